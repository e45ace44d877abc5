package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snaplink-hq/paybridge/pkg/models"
)

// intentRecord is the gorm mapping of models.Intent
type intentRecord struct {
	ID                 string `gorm:"column:id;primaryKey"`
	PaymentRequestID   string `gorm:"column:payment_request_id;index;not null"`
	DepositAddress     string `gorm:"column:deposit_address;not null"`
	DepositMemo        string `gorm:"column:deposit_memo"`
	SourceChain        string `gorm:"column:source_chain;not null"`
	SourceToken        string `gorm:"column:source_token;not null"`
	AmountIn           string `gorm:"column:amount_in;not null"`
	AmountInFormatted  string `gorm:"column:amount_in_formatted;not null"`
	DestinationAddress string `gorm:"column:destination_address;not null"`
	DestinationToken   string `gorm:"column:destination_token;not null"`
	AmountOut          string `gorm:"column:amount_out;not null"`
	AmountOutFormatted string `gorm:"column:amount_out_formatted;not null"`
	RefundAddress      string `gorm:"column:refund_address;not null"`
	Status             string `gorm:"column:status;index;not null"`
	DepositTxHash      string `gorm:"column:deposit_tx_hash"`
	SettlementTxHash   string `gorm:"column:settlement_tx_hash"`
	RefundTxHash       string `gorm:"column:refund_tx_hash"`
	QuoteExpiresAt     time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CompletedAt        *time.Time
}

func (intentRecord) TableName() string {
	return "bridge_intents"
}

// paymentRequestRecord maps the payment-request table owned by the web
// application; this service only reads it.
type paymentRequestRecord struct {
	ID                 string `gorm:"column:id;primaryKey"`
	DestinationAddress string `gorm:"column:destination_address"`
	AssetSymbol        string `gorm:"column:asset_symbol"`
	Amount             string `gorm:"column:amount"`
	Network            string `gorm:"column:network"`
}

func (paymentRequestRecord) TableName() string {
	return "payment_requests"
}

// PostgresStore is the production Store backed by Postgres via gorm
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to Postgres and migrates the intent table
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&intentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate intent table: %v", err)
	}
	return &PostgresStore{db: db}, nil
}

// CreateIntent inserts a new intent row
func (s *PostgresStore) CreateIntent(ctx context.Context, intent *models.Intent) error {
	rec := toRecord(intent)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create intent: %v", err)
	}
	return nil
}

// GetIntent reads one intent row by ID
func (s *PostgresStore) GetIntent(ctx context.Context, id string) (*models.Intent, error) {
	var rec intentRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read intent: %v", err)
	}
	return fromRecord(&rec), nil
}

// UpdateIntent applies the update inside a row-locked transaction so two
// concurrent status checks cannot produce divergent terminal states.
func (s *PostgresStore) UpdateIntent(ctx context.Context, id string, expect []models.Status, update IntentUpdate) (*models.Intent, error) {
	var out *models.Intent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec intentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read intent for update: %v", err)
		}

		if !statusAllowed(models.Status(rec.Status), expect) {
			return ErrConflict
		}

		intent := fromRecord(&rec)
		applyUpdate(intent, update)

		updated := toRecord(intent)
		if err := tx.Model(&intentRecord{}).Where("id = ?", id).Updates(&updated).Error; err != nil {
			return fmt.Errorf("failed to update intent: %v", err)
		}
		out = intent
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPaymentRequest reads one payment request by ID
func (s *PostgresStore) GetPaymentRequest(ctx context.Context, id string) (*models.PaymentRequest, error) {
	var rec paymentRequestRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payment request: %v", err)
	}
	return &models.PaymentRequest{
		ID:                 rec.ID,
		DestinationAddress: rec.DestinationAddress,
		AssetSymbol:        rec.AssetSymbol,
		Amount:             rec.Amount,
		Network:            rec.Network,
	}, nil
}

func toRecord(intent *models.Intent) intentRecord {
	return intentRecord{
		ID:                 intent.ID,
		PaymentRequestID:   intent.PaymentRequestID,
		DepositAddress:     intent.DepositAddress,
		DepositMemo:        intent.DepositMemo,
		SourceChain:        intent.SourceChain,
		SourceToken:        intent.SourceToken,
		AmountIn:           intent.AmountIn,
		AmountInFormatted:  intent.AmountInFormatted,
		DestinationAddress: intent.DestinationAddress,
		DestinationToken:   intent.DestinationToken,
		AmountOut:          intent.AmountOut,
		AmountOutFormatted: intent.AmountOutFormatted,
		RefundAddress:      intent.RefundAddress,
		Status:             string(intent.Status),
		DepositTxHash:      intent.DepositTxHash,
		SettlementTxHash:   intent.SettlementTxHash,
		RefundTxHash:       intent.RefundTxHash,
		QuoteExpiresAt:     intent.QuoteExpiresAt,
		CreatedAt:          intent.CreatedAt,
		UpdatedAt:          intent.UpdatedAt,
		CompletedAt:        intent.CompletedAt,
	}
}

func fromRecord(rec *intentRecord) *models.Intent {
	return &models.Intent{
		ID:                 rec.ID,
		PaymentRequestID:   rec.PaymentRequestID,
		DepositAddress:     rec.DepositAddress,
		DepositMemo:        rec.DepositMemo,
		SourceChain:        rec.SourceChain,
		SourceToken:        rec.SourceToken,
		AmountIn:           rec.AmountIn,
		AmountInFormatted:  rec.AmountInFormatted,
		DestinationAddress: rec.DestinationAddress,
		DestinationToken:   rec.DestinationToken,
		AmountOut:          rec.AmountOut,
		AmountOutFormatted: rec.AmountOutFormatted,
		RefundAddress:      rec.RefundAddress,
		Status:             models.Status(rec.Status),
		DepositTxHash:      rec.DepositTxHash,
		SettlementTxHash:   rec.SettlementTxHash,
		RefundTxHash:       rec.RefundTxHash,
		QuoteExpiresAt:     rec.QuoteExpiresAt,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
		CompletedAt:        rec.CompletedAt,
	}
}
