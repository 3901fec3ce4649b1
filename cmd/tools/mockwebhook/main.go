// mockwebhook signs a Paystack-style charge event with the secret key and
// posts it to a local webhook endpoint. Useful for exercising the receiver
// without real gateway traffic.
package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Metadata  struct {
			OrderID string `json:"orderId"`
			UID     string `json:"uid"`
		} `json:"metadata"`
	} `json:"data"`
}

func main() {
	url := flag.String("url", "http://localhost:8080/api/paystack/webhook", "Webhook URL")
	secret := flag.String("secret", os.Getenv("PAYSTACK_SECRET_KEY"), "Paystack secret key")
	event := flag.String("event", "charge.success", "Event type (charge.success, charge.failed, ...)")
	reference := flag.String("reference", "", "Payment reference")
	status := flag.String("status", "success", "Charge status inside the payload")
	amount := flag.Int64("amount", 350000, "Amount in subunits")
	currency := flag.String("currency", "NGN", "Currency")
	orderID := flag.String("order-id", "", "Order id metadata")
	uid := flag.String("uid", "", "Customer id metadata")
	dryRun := flag.Bool("dry-run", false, "Only print signature header, don't send")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintf(os.Stderr, "Error: secret not provided and PAYSTACK_SECRET_KEY not set\n")
		os.Exit(1)
	}
	if *reference == "" {
		fmt.Fprintf(os.Stderr, "Error: -reference is required\n")
		os.Exit(1)
	}

	payload := webhookPayload{Event: *event}
	payload.Data.Reference = *reference
	payload.Data.Status = *status
	payload.Data.Amount = *amount
	payload.Data.Currency = *currency
	payload.Data.Metadata.OrderID = *orderID
	payload.Data.Metadata.UID = *uid

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	sig := computeSig([]byte(*secret), body)

	fmt.Printf("x-paystack-signature: %s\n", sig)
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-paystack-signature", sig)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func computeSig(secret, body []byte) string {
	m := hmac.New(sha512.New, secret)
	m.Write(body)
	return hex.EncodeToString(m.Sum(nil))
}
