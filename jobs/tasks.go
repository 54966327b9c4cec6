package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeOrderConfirmation is the task type for order confirmation mails.
	TaskTypeOrderConfirmation = "mail:order_confirmation"
	// TaskTypeLowStockScan is the task type for the periodic low stock sweep.
	TaskTypeLowStockScan = "inventory:lowstock"
)

// OrderConfirmationPayload carries the order identity for the mail job.
type OrderConfirmationPayload struct {
	OrderNumber string `json:"order_number"`
	VendorEmail string `json:"vendor_email"`
	Total       string `json:"total"`
}

// NewOrderConfirmationTask constructs an Asynq task.
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeOrderConfirmation, data), nil
}

// HandleOrderConfirmationTask processes TaskTypeOrderConfirmation tasks.
func HandleOrderConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: hook up SMTP delivery once a mail relay is provisioned.
	fmt.Printf("[jobs] order confirmation for %s to %s\n", payload.OrderNumber, payload.VendorEmail)
	return nil
}

// LowStockScanPayload configures one sweep. A zero Limit scans everything.
type LowStockScanPayload struct {
	Limit int `json:"limit"`
}

// NewLowStockScanTask constructs an Asynq task.
func NewLowStockScanTask(limit int) (*asynq.Task, error) {
	data, err := json.Marshal(LowStockScanPayload{Limit: limit})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLowStockScan, data), nil
}
