package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.resend.com/emails"

// ResendのREST APIを叩くトランザクションメールクライアント。
// APIキーが空のときは送信せずエラーを返す（呼び出し側でログだけ残す）。
type ResendClient struct {
	apiKey   string
	from     string
	appURL   string
	endpoint string
	client   *http.Client
}

func NewResendClient(apiKey string, from string, appURL string) *ResendClient {
	return &ResendClient{
		apiKey:   apiKey,
		from:     from,
		appURL:   appURL,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *ResendClient) send(ctx context.Context, to string, subject string, html string) error {
	if c.apiKey == "" {
		return fmt.Errorf("mail: api key not configured")
	}

	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail: send failed with status %d", resp.StatusCode)
	}
	return nil
}

// 新規アカウントにだけ送る。生成パスワードはこのメール以外に残らない。
func (c *ResendClient) SendCredentialEmail(ctx context.Context, email string, firstName string, password string) error {
	loginURL := c.appURL + "/login"

	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hei %s!</h2>
  <p>Tilillesi on luotu kirjautumistiedot:</p>
  <p><strong>Sähköposti:</strong> %s<br/><strong>Salasana:</strong> %s</p>
  <p><a href="%s">Kirjaudu sisään</a></p>
  <p style="color:#999;font-size:12px;">Tämä viesti on lähetetty automaattisesti. Älä vastaa siihen.</p>
</div>`, firstName, email, password, loginURL)

	return c.send(ctx, email, "Kirjautumistiedot", html)
}

// 取り込みが成功するたびに送る。
func (c *ResendClient) SendWelcomeEmail(ctx context.Context, email string, firstName string, courseName string) error {
	loginURL := c.appURL + "/login"

	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hei %s!</h2>
  <p>Kiitos kurssin ostamisesta! Olet nyt kirjautunut kurssille <strong>%s</strong>.</p>
  <p><a href="%s">Kirjaudu sisään</a> ja siirry "Omat kurssit" -osioon.</p>
  <p style="color:#999;font-size:12px;">Tämä viesti on lähetetty automaattisesti. Älä vastaa siihen.</p>
</div>`, firstName, courseName, loginURL)

	return c.send(ctx, email, fmt.Sprintf("Tervetuloa kurssille: %s", courseName), html)
}

func (c *ResendClient) SendPasswordResetEmail(ctx context.Context, email string, resetLink string) error {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Salasanan palautus</h2>
  <p>Voit asettaa uuden salasanan alla olevasta linkistä. Linkki on voimassa tunnin.</p>
  <p><a href="%s">Aseta uusi salasana</a></p>
  <p style="color:#999;font-size:12px;">Jos et pyytänyt palautusta, voit jättää tämän viestin huomiotta.</p>
</div>`, resetLink)

	return c.send(ctx, email, "Salasanan palautus", html)
}
