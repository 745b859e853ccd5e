package unitofwork

import (
	"context"

	"solosolver-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TransactionRepository() contract.TransactionRepository
	ProfileRepository() contract.ProfileRepository
	InteractionRepository() contract.InteractionRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
