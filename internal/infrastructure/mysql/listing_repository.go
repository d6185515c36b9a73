package mysql

import (
	"context"
	"database/sql"

	"reward-center/internal/domain"
	"reward-center/internal/solana"
)

type MySQLListingRepository struct {
	db *sql.DB
}

func NewMySQLListingRepository(db *sql.DB) *MySQLListingRepository {
	return &MySQLListingRepository{db: db}
}

func (r *MySQLListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
        INSERT INTO listings (address, reward_center, rewardable_collection, seller,
            metadata, token_mint, token_account, trade_state, price, token_size,
            bump, trade_state_bump, free_trade_state_bump, created_at, reward_matures_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		listing.Address.String(), listing.RewardCenter.String(), listing.RewardableCollection.String(),
		listing.Seller.String(), listing.Metadata.String(), listing.TokenMint.String(),
		listing.TokenAccount.String(), listing.TradeState.String(),
		listing.Price, listing.TokenSize,
		listing.Bump, listing.TradeStateBump, listing.FreeTradeStateBump,
		listing.CreatedAt, listing.RewardMaturesAt)
	return translateError(err)
}

func (r *MySQLListingRepository) Get(ctx context.Context, address solana.Pubkey) (*domain.Listing, error) {
	query := listingSelect + ` WHERE address = ?`

	row := r.db.QueryRowContext(ctx, query, address.String())
	listing, err := scanListing(row.Scan)
	if err != nil {
		return nil, translateError(err)
	}
	return listing, nil
}

func (r *MySQLListingRepository) Delete(ctx context.Context, address solana.Pubkey) error {
	query := `DELETE FROM listings WHERE address = ?`
	result, err := r.db.ExecContext(ctx, query, address.String())
	if err != nil {
		return translateError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MySQLListingRepository) ListActive(ctx context.Context) ([]*domain.Listing, error) {
	query := listingSelect + ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

const listingSelect = `
        SELECT address, reward_center, rewardable_collection, seller,
            metadata, token_mint, token_account, trade_state, price, token_size,
            bump, trade_state_bump, free_trade_state_bump, created_at, reward_matures_at
        FROM listings`

func scanListing(scan func(dest ...interface{}) error) (*domain.Listing, error) {
	var listing domain.Listing
	var cols [8]string

	err := scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7],
		&listing.Price, &listing.TokenSize,
		&listing.Bump, &listing.TradeStateBump, &listing.FreeTradeStateBump,
		&listing.CreatedAt, &listing.RewardMaturesAt)
	if err != nil {
		return nil, err
	}

	targets := []*solana.Pubkey{
		&listing.Address, &listing.RewardCenter, &listing.RewardableCollection, &listing.Seller,
		&listing.Metadata, &listing.TokenMint, &listing.TokenAccount, &listing.TradeState,
	}
	for i, target := range targets {
		if *target, err = solana.PubkeyFromBase58(cols[i]); err != nil {
			return nil, err
		}
	}

	return &listing, nil
}
