package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

// State machine: pending → verified | rejected (keduanya terminal).
const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

const (
	PaymentMethodManual  = "manual" // upload bukti transfer/screenshot
	PaymentMethodGateway = "gateway"
)

const (
	GatewayProviderMidtrans = "midtrans"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID      uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentOrderID string    `gorm:"column:payment_order_id;type:varchar(64);uniqueIndex;not null" json:"payment_order_id"`

	PaymentUserID   uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentCourseID uuid.UUID `gorm:"column:payment_course_id;type:uuid;not null;index" json:"payment_course_id"`

	PaymentAmountIDR int    `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr >= 0" json:"payment_amount_idr"`
	PaymentCurrency  string `gorm:"column:payment_currency;type:varchar(8);not null;default:IDR" json:"payment_currency"`

	PaymentStatus string `gorm:"column:payment_status;type:varchar(16);not null;default:'pending';index:idx_payments_course_status" json:"payment_status"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(16);not null;default:'manual'" json:"payment_method"`

	// Bukti pembayaran manual: binary in-memory, sudah dinormalkan ke webp kecil
	PaymentScreenshot     []byte  `gorm:"column:payment_screenshot;type:bytea" json:"-"`
	PaymentScreenshotType *string `gorm:"column:payment_screenshot_type;type:varchar(64)" json:"payment_screenshot_type,omitempty"`
	PaymentScreenshotName *string `gorm:"column:payment_screenshot_name;type:varchar(255)" json:"payment_screenshot_name,omitempty"`

	// Diisi hanya saat verify
	PaymentGPayTransactionID *string `gorm:"column:payment_gpay_transaction_id;type:varchar(64)" json:"payment_gpay_transaction_id,omitempty"`
	// Diisi hanya saat reject
	PaymentFailureReason *string `gorm:"column:payment_failure_reason;type:text" json:"payment_failure_reason,omitempty"`

	// Gateway (opsional, method=gateway)
	PaymentGatewayProvider  *string `gorm:"column:payment_gateway_provider;type:varchar(32)" json:"payment_gateway_provider,omitempty"`
	PaymentGatewayReference *string `gorm:"column:payment_gateway_reference" json:"payment_gateway_reference,omitempty"`
	PaymentCheckoutURL      *string `gorm:"column:payment_checkout_url" json:"payment_checkout_url,omitempty"`

	// Audit requester
	PaymentRequesterIP *string `gorm:"column:payment_requester_ip;type:varchar(64)" json:"payment_requester_ip,omitempty"`
	PaymentRequesterUA *string `gorm:"column:payment_requester_ua;type:text" json:"payment_requester_ua,omitempty"`

	PaymentPaidAt     *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentVerifiedAt *time.Time `gorm:"column:payment_verified_at" json:"payment_verified_at,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	if p.PaymentOrderID == "" {
		p.PaymentOrderID = GenerateOrderID()
	}
	return nil
}

/* ===================== Helpers ===================== */

func (p *PaymentModel) IsPending() bool  { return p.PaymentStatus == PaymentStatusPending }
func (p *PaymentModel) IsVerified() bool { return p.PaymentStatus == PaymentStatusVerified }

// IsTerminal: verified/rejected tidak punya transisi keluar.
func (p *PaymentModel) IsTerminal() bool {
	return p.PaymentStatus == PaymentStatusVerified || p.PaymentStatus == PaymentStatusRejected
}

// GenerateOrderID membuat order id unik format ORD-<unixms>-<rand>.
func GenerateOrderID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}
