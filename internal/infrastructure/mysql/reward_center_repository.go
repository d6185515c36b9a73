package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reward-center/internal/domain"
	"reward-center/internal/rewards"
	"reward-center/internal/solana"

	gomysql "github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return domain.ErrDuplicateEntity
	}
	return err
}

type MySQLRewardCenterRepository struct {
	db *sql.DB
}

func NewMySQLRewardCenterRepository(db *sql.DB) *MySQLRewardCenterRepository {
	return &MySQLRewardCenterRepository{db: db}
}

func (r *MySQLRewardCenterRepository) Create(ctx context.Context, center *domain.RewardCenter) error {
	query := `
        INSERT INTO reward_centers (address, auction_house, token_mint, collection_oracle,
            warmup_seconds, reward_payout, bump, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	var oracle sql.NullString
	if center.CollectionOracle != nil {
		oracle = sql.NullString{String: center.CollectionOracle.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		center.Address.String(), center.AuctionHouse.String(), center.TokenMint.String(), oracle,
		center.Rule.WarmupSeconds, center.Rule.RewardPayout, center.Bump,
		center.CreatedAt, center.UpdatedAt)
	return translateError(err)
}

func (r *MySQLRewardCenterRepository) Get(ctx context.Context, address solana.Pubkey) (*domain.RewardCenter, error) {
	query := `
        SELECT address, auction_house, token_mint, collection_oracle,
            warmup_seconds, reward_payout, bump, created_at, updated_at
        FROM reward_centers WHERE address = ?
    `

	var center domain.RewardCenter
	var addr, house, mint string
	var oracle sql.NullString

	err := r.db.QueryRowContext(ctx, query, address.String()).Scan(
		&addr, &house, &mint, &oracle,
		&center.Rule.WarmupSeconds, &center.Rule.RewardPayout, &center.Bump,
		&center.CreatedAt, &center.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	if center.Address, err = solana.PubkeyFromBase58(addr); err != nil {
		return nil, err
	}
	if center.AuctionHouse, err = solana.PubkeyFromBase58(house); err != nil {
		return nil, err
	}
	if center.TokenMint, err = solana.PubkeyFromBase58(mint); err != nil {
		return nil, err
	}
	if oracle.Valid {
		key, err := solana.PubkeyFromBase58(oracle.String)
		if err != nil {
			return nil, err
		}
		center.CollectionOracle = &key
	}

	return &center, nil
}

func (r *MySQLRewardCenterRepository) UpdateRule(ctx context.Context, address solana.Pubkey, rule rewards.Rule) error {
	query := `UPDATE reward_centers SET warmup_seconds = ?, reward_payout = ?, updated_at = ? WHERE address = ?`
	result, err := r.db.ExecContext(ctx, query, rule.WarmupSeconds, rule.RewardPayout, time.Now().UTC(), address.String())
	if err != nil {
		return translateError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
