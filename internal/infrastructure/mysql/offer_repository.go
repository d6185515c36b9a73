package mysql

import (
	"context"
	"database/sql"

	"reward-center/internal/domain"
	"reward-center/internal/solana"
)

// Offers are keyed by buyer trade state. Two offers from the same wallet on
// the same asset at different prices land in separate rows.
type MySQLOfferRepository struct {
	db *sql.DB
}

func NewMySQLOfferRepository(db *sql.DB) *MySQLOfferRepository {
	return &MySQLOfferRepository{db: db}
}

func (r *MySQLOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
        INSERT INTO offers (trade_state, address, reward_center, rewardable_collection, buyer,
            metadata, token_mint, token_account, buyer_price, token_size,
            bump, trade_state_bump, escrow_payment_bump, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		offer.TradeState.String(), offer.Address.String(), offer.RewardCenter.String(),
		offer.RewardableCollection.String(), offer.Buyer.String(), offer.Metadata.String(),
		offer.TokenMint.String(), offer.TokenAccount.String(),
		offer.BuyerPrice, offer.TokenSize,
		offer.Bump, offer.TradeStateBump, offer.EscrowPaymentBump, offer.CreatedAt)
	return translateError(err)
}

func (r *MySQLOfferRepository) GetByTradeState(ctx context.Context, tradeState solana.Pubkey) (*domain.Offer, error) {
	query := offerSelect + ` WHERE trade_state = ?`

	row := r.db.QueryRowContext(ctx, query, tradeState.String())
	offer, err := scanOffer(row.Scan)
	if err != nil {
		return nil, translateError(err)
	}
	return offer, nil
}

func (r *MySQLOfferRepository) Delete(ctx context.Context, tradeState solana.Pubkey) error {
	query := `DELETE FROM offers WHERE trade_state = ?`
	result, err := r.db.ExecContext(ctx, query, tradeState.String())
	if err != nil {
		return translateError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MySQLOfferRepository) ListOpen(ctx context.Context) ([]*domain.Offer, error) {
	query := offerSelect + ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*domain.Offer
	for rows.Next() {
		offer, err := scanOffer(rows.Scan)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

const offerSelect = `
        SELECT trade_state, address, reward_center, rewardable_collection, buyer,
            metadata, token_mint, token_account, buyer_price, token_size,
            bump, trade_state_bump, escrow_payment_bump, created_at
        FROM offers`

func scanOffer(scan func(dest ...interface{}) error) (*domain.Offer, error) {
	var offer domain.Offer
	var cols [8]string

	err := scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7],
		&offer.BuyerPrice, &offer.TokenSize,
		&offer.Bump, &offer.TradeStateBump, &offer.EscrowPaymentBump, &offer.CreatedAt)
	if err != nil {
		return nil, err
	}

	targets := []*solana.Pubkey{
		&offer.TradeState, &offer.Address, &offer.RewardCenter, &offer.RewardableCollection,
		&offer.Buyer, &offer.Metadata, &offer.TokenMint, &offer.TokenAccount,
	}
	for i, target := range targets {
		if *target, err = solana.PubkeyFromBase58(cols[i]); err != nil {
			return nil, err
		}
	}

	return &offer, nil
}
