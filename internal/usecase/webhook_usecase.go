package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
)

// WooCommerceが送ってくる注文ペイロード。
type WooOrderPayload struct {
	ID                 int64             `json:"id"`
	OrderKey           string            `json:"order_key"`
	Status             string            `json:"status"`
	Currency           string            `json:"currency"`
	Total              string            `json:"total"`
	CustomerID         int64             `json:"customer_id"`
	Billing            WooBillingPayload `json:"billing"`
	LineItems          []WooLineItem     `json:"line_items"`
	PaymentMethodTitle string            `json:"payment_method_title"`
	DateCreated        string            `json:"date_created"`
}

type WooBillingPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type WooLineItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Sku       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

type IngestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int64  `json:"order_id,omitempty"`
}

// 注文取り込みのオーケストレータ。
// 署名チェック→completed判定→注文行の挿入（重複はDBの一意制約で弾く）→
// 明細ごとの mapping / アカウント / enrollment / メール、の順に進む。
type OrderIngestionUsecase struct {
	tx          repo.TransactionManager
	provisioner *AccountProvisioner
	mailer      Mailer
	idGen       IDGenerator
	clock       Clock
	logger      Logger
}

// DI
func NewOrderIngestionUsecase(
	tx repo.TransactionManager,
	provisioner *AccountProvisioner,
	mailer Mailer,
	idGen IDGenerator,
	clock Clock,
	logger Logger,
) *OrderIngestionUsecase {
	return &OrderIngestionUsecase{
		tx:          tx,
		provisioner: provisioner,
		mailer:      mailer,
		idGen:       idGen,
		clock:       clock,
		logger:      logger,
	}
}

// コミット後に送るメール。トランザクション内では送らない。
type pendingNotification struct {
	email      string
	firstName  string
	courseName string
	password   string
	credential bool
}

func (u *OrderIngestionUsecase) Ingest(ctx context.Context, order WooOrderPayload) (IngestResult, error) {
	// completed以外は何もしないで成功を返す
	if order.Status != "completed" {
		u.logger.Infof("order %d not completed (status: %s), skipping", order.ID, order.Status)
		return IngestResult{Success: true, Message: "Order not completed, skipping"}, nil
	}

	var (
		duplicate     bool
		notifications []pendingNotification
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()

		orderDate := now
		if t, perr := time.Parse("2006-01-02T15:04:05", order.DateCreated); perr == nil {
			orderDate = t
		}

		wooOrder := &model.WooOrder{
			ID:                u.idGen.NewID(),
			WooOrderID:        order.ID,
			WooOrderKey:       order.OrderKey,
			CustomerEmail:     NormalizeEmail(order.Billing.Email),
			CustomerFirstName: order.Billing.FirstName,
			CustomerLastName:  order.Billing.LastName,
			OrderStatus:       order.Status,
			OrderTotal:        order.Total,
			Currency:          order.Currency,
			PaymentMethod:     order.PaymentMethodTitle,
			OrderDate:         orderDate,
			ProcessedAt:       now,
		}

		// 事前の存在チェックはしない。二重配信はINSERTの一意制約違反として現れる。
		if err := r.WooOrders().Create(ctx, wooOrder); err != nil {
			if errors.Is(err, repo.ErrDuplicateOrder) {
				duplicate = true
				return nil
			}
			return NewHTTPError(http.StatusInternalServerError, "failed to process order")
		}

		// 明細ごとの失敗は行単位で切り離す（ログだけ残して次の行へ）
		for _, item := range order.LineItems {
			mapping, found, err := r.SkuMappings().FindActiveBySku(ctx, item.Sku)
			if err != nil {
				u.logger.Errorf("order %d: sku mapping lookup failed for %q: %v", order.ID, item.Sku, err)
				continue
			}
			if !found {
				u.logger.Warnf("order %d: no active course mapping for sku %q, skipping line", order.ID, item.Sku)
				continue
			}

			account, err := u.provisioner.FindOrCreate(ctx, r.Users(), order.Billing.Email, order.Billing.FirstName, order.Billing.LastName)
			if err != nil {
				u.logger.Errorf("order %d: account provisioning failed for %q: %v", order.ID, order.Billing.Email, err)
				continue
			}

			orderItem := &model.WooOrderItem{
				ID:           u.idGen.NewID(),
				WooOrderID:   wooOrder.ID,
				WooProductID: item.ProductID,
				Sku:          item.Sku,
				ProductName:  item.Name,
				Quantity:     item.Quantity,
				LineTotal:    item.Total,
				CourseID:     mapping.CourseID,
				UserID:       account.User.ID,
				CreatedAt:    now,
			}
			if err := r.WooOrderItems().Create(ctx, orderItem); err != nil {
				u.logger.Errorf("order %d: order item insert failed for sku %q: %v", order.ID, item.Sku, err)
				continue
			}

			wooOrderID := wooOrder.ID
			enrollment := &model.Enrollment{
				ID:              u.idGen.NewID(),
				UserID:          account.User.ID,
				CourseID:        mapping.CourseID,
				WooOrderID:      &wooOrderID,
				Status:          model.EnrollmentStatusActive,
				AccessGrantedAt: now,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := r.Enrollments().Upsert(ctx, enrollment); err != nil {
				u.logger.Errorf("order %d: enrollment upsert failed for user %s course %s: %v", order.ID, account.User.ID, mapping.CourseID, err)
				continue
			}

			courseName := mapping.ProductName
			if courseName == "" {
				courseName = item.Name
			}

			if account.Created {
				notifications = append(notifications, pendingNotification{
					email:      account.User.Email,
					firstName:  order.Billing.FirstName,
					password:   account.PlainPassword,
					credential: true,
				})
			}
			notifications = append(notifications, pendingNotification{
				email:      account.User.Email,
				firstName:  order.Billing.FirstName,
				courseName: courseName,
			})
		}

		return nil
	})

	if err != nil {
		return IngestResult{}, err
	}

	if duplicate {
		u.logger.Infof("order %d already processed", order.ID)
		return IngestResult{Success: true, Message: "Order already processed", OrderID: order.ID}, nil
	}

	// メールはコミット後のベストエフォート。失敗してもログだけ。
	for _, n := range notifications {
		if n.credential {
			if err := u.mailer.SendCredentialEmail(ctx, n.email, n.firstName, n.password); err != nil {
				u.logger.Errorf("order %d: credential email to %s failed: %v", order.ID, n.email, err)
			}
			continue
		}
		if err := u.mailer.SendWelcomeEmail(ctx, n.email, n.firstName, n.courseName); err != nil {
			u.logger.Errorf("order %d: welcome email to %s failed: %v", order.ID, n.email, err)
		}
	}

	return IngestResult{Success: true, Message: "Order processed successfully", OrderID: order.ID}, nil
}
