package adapter

import (
	"context"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// AuthAPI defines the remote authentication operations.
type AuthAPI interface {
	Register(ctx context.Context, input entity.RegisterInput) (*entity.AuthResult, error)
	Login(ctx context.Context, input entity.LoginInput) (*entity.AuthResult, error)
}

// UserAPI defines the remote profile operations.
type UserAPI interface {
	GetUser(ctx context.Context) (*entity.User, error)
	GetUserWithCache(ctx context.Context, skipCache bool) (*entity.User, error)
	ClearUserCache(ctx context.Context) error
}

// CycleAPI defines the onboarding submission.
type CycleAPI interface {
	SetUserCycle(ctx context.Context, settings entity.CycleSettings) (string, error)
}

// LogAPI defines the remote cycle log operations.
type LogAPI interface {
	CreateCycleLog(ctx context.Context, input entity.LogInput) (*entity.CycleLog, error)
	GetCycleLogs(ctx context.Context, page, limit int) (*entity.LogPage, error)
	GetCycleLogsWithCache(ctx context.Context, skipCache bool) ([]entity.CycleLog, error)
	GetMonthlyLogsWithCache(ctx context.Context, skipCache bool) ([]entity.CycleLog, error)
	ClearLogsCache(ctx context.Context) error
}

// PredictionAPI defines the remote prediction operations.
type PredictionAPI interface {
	GetCyclePredictionsWithCache(ctx context.Context, skipCache bool) ([]entity.CyclePrediction, error)
	ClearPredictionsCache(ctx context.Context) error
}

// ProductAPI defines the remote catalog operations.
type ProductAPI interface {
	CreateProduct(ctx context.Context, input entity.ProductInput) (*entity.Product, error)
	GetProductsWithCache(ctx context.Context, skipCache bool) ([]entity.Product, error)
	ClearProductsCache(ctx context.Context) error
}
