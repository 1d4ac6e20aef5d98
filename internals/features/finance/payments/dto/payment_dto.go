// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/finance/payments/model"
)

/* ===================== Requests ===================== */

// CreatePaymentRequest: field non-file dari form multipart (screenshot terpisah).
type CreatePaymentRequest struct {
	CourseID  string `form:"course_id" json:"course_id" validate:"required,uuid4"`
	AmountIDR int    `form:"amount_idr" json:"amount_idr" validate:"required,min=1"`
}

const (
	VerifyActionVerify = "verify"
	VerifyActionReject = "reject"
)

type VerifyPaymentRequest struct {
	Action            string  `json:"action" validate:"required,oneof=verify reject"`
	GPayTransactionID *string `json:"gpay_transaction_id"`
	RejectionReason   *string `json:"rejection_reason"`
}

type CreateGatewayPaymentRequest struct {
	CourseID  string `json:"course_id" validate:"required,uuid4"`
	AmountIDR int    `json:"amount_idr" validate:"required,min=1"`
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	PaymentID                uuid.UUID  `json:"payment_id"`
	PaymentOrderID           string     `json:"payment_order_id"`
	PaymentUserID            uuid.UUID  `json:"payment_user_id"`
	PaymentCourseID          uuid.UUID  `json:"payment_course_id"`
	PaymentAmountIDR         int        `json:"payment_amount_idr"`
	PaymentCurrency          string     `json:"payment_currency"`
	PaymentStatus            string     `json:"payment_status"`
	PaymentMethod            string     `json:"payment_method"`
	PaymentScreenshotType    *string    `json:"payment_screenshot_type,omitempty"`
	PaymentGPayTransactionID *string    `json:"payment_gpay_transaction_id,omitempty"`
	PaymentFailureReason     *string    `json:"payment_failure_reason,omitempty"`
	PaymentCheckoutURL       *string    `json:"payment_checkout_url,omitempty"`
	PaymentPaidAt            *time.Time `json:"payment_paid_at,omitempty"`
	PaymentVerifiedAt        *time.Time `json:"payment_verified_at,omitempty"`
	PaymentCreatedAt         time.Time  `json:"payment_created_at"`
}

func FromModel(m *model.PaymentModel) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:                m.PaymentID,
		PaymentOrderID:           m.PaymentOrderID,
		PaymentUserID:            m.PaymentUserID,
		PaymentCourseID:          m.PaymentCourseID,
		PaymentAmountIDR:         m.PaymentAmountIDR,
		PaymentCurrency:          m.PaymentCurrency,
		PaymentStatus:            m.PaymentStatus,
		PaymentMethod:            m.PaymentMethod,
		PaymentScreenshotType:    m.PaymentScreenshotType,
		PaymentGPayTransactionID: m.PaymentGPayTransactionID,
		PaymentFailureReason:     m.PaymentFailureReason,
		PaymentCheckoutURL:       m.PaymentCheckoutURL,
		PaymentPaidAt:            m.PaymentPaidAt,
		PaymentVerifiedAt:        m.PaymentVerifiedAt,
		PaymentCreatedAt:         m.PaymentCreatedAt,
	}
}

// VerifyPaymentResponse membawa flag two-phase outcome: verifikasi sudah
// commit; invoice/email hanya best-effort.
type VerifyPaymentResponse struct {
	Payment           *PaymentResponse `json:"payment"`
	InvoiceEmailSent  bool             `json:"invoice_email_sent"`
	NotificationError string           `json:"notification_error,omitempty"`
}
