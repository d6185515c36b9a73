package mysql

import (
	"context"
	"database/sql"

	"reward-center/internal/domain"
	"reward-center/internal/solana"
)

type MySQLCollectionRepository struct {
	db *sql.DB
}

func NewMySQLCollectionRepository(db *sql.DB) *MySQLCollectionRepository {
	return &MySQLCollectionRepository{db: db}
}

func (r *MySQLCollectionRepository) Create(ctx context.Context, collection *domain.RewardableCollection) error {
	query := `
        INSERT INTO rewardable_collections (address, reward_center, collection, bump, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		collection.Address.String(), collection.RewardCenter.String(),
		collection.Collection.String(), collection.Bump, collection.CreatedAt)
	return translateError(err)
}

func (r *MySQLCollectionRepository) Get(ctx context.Context, address solana.Pubkey) (*domain.RewardableCollection, error) {
	query := `
        SELECT address, reward_center, collection, bump, created_at
        FROM rewardable_collections WHERE address = ?
    `

	var collection domain.RewardableCollection
	var addr, center, mint string

	err := r.db.QueryRowContext(ctx, query, address.String()).Scan(
		&addr, &center, &mint, &collection.Bump, &collection.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	if collection.Address, err = solana.PubkeyFromBase58(addr); err != nil {
		return nil, err
	}
	if collection.RewardCenter, err = solana.PubkeyFromBase58(center); err != nil {
		return nil, err
	}
	if collection.Collection, err = solana.PubkeyFromBase58(mint); err != nil {
		return nil, err
	}

	return &collection, nil
}

func (r *MySQLCollectionRepository) Delete(ctx context.Context, address solana.Pubkey) error {
	query := `DELETE FROM rewardable_collections WHERE address = ?`
	result, err := r.db.ExecContext(ctx, query, address.String())
	if err != nil {
		return translateError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
