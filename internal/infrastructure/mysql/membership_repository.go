package mysql

import (
	"context"
	"database/sql"

	"reward-center/internal/domain"
	"reward-center/internal/solana"
)

type MySQLMembershipRepository struct {
	db *sql.DB
}

func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}

func (r *MySQLMembershipRepository) CreateStore(ctx context.Context, store *domain.Store) error {
	query := `
        INSERT INTO stores (address, admin, name, description, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		store.Address.String(), store.Admin.String(), store.Name, store.Description, store.CreatedAt)
	return translateError(err)
}

func (r *MySQLMembershipRepository) GetStore(ctx context.Context, address solana.Pubkey) (*domain.Store, error) {
	query := `
        SELECT address, admin, name, description, created_at
        FROM stores WHERE address = ?
    `

	var store domain.Store
	var addr, admin string

	err := r.db.QueryRowContext(ctx, query, address.String()).Scan(
		&addr, &admin, &store.Name, &store.Description, &store.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	if store.Address, err = solana.PubkeyFromBase58(addr); err != nil {
		return nil, err
	}
	if store.Admin, err = solana.PubkeyFromBase58(admin); err != nil {
		return nil, err
	}

	return &store, nil
}

func (r *MySQLMembershipRepository) CreateSellingResource(ctx context.Context, resource *domain.SellingResource) error {
	query := `
        INSERT INTO selling_resources (address, store, owner, resource, vault, vault_owner,
            supply, max_supply, state, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	var maxSupply sql.NullInt64
	if resource.MaxSupply != nil {
		maxSupply = sql.NullInt64{Int64: int64(*resource.MaxSupply), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		resource.Address.String(), resource.Store.String(), resource.Owner.String(),
		resource.Resource.String(), resource.Vault.String(), resource.VaultOwner.String(),
		resource.Supply, maxSupply, int(resource.State), resource.CreatedAt)
	return translateError(err)
}

func (r *MySQLMembershipRepository) GetSellingResource(ctx context.Context, address solana.Pubkey) (*domain.SellingResource, error) {
	query := `
        SELECT address, store, owner, resource, vault, vault_owner,
            supply, max_supply, state, created_at
        FROM selling_resources WHERE address = ?
    `

	var resource domain.SellingResource
	var cols [6]string
	var maxSupply sql.NullInt64
	var state int

	err := r.db.QueryRowContext(ctx, query, address.String()).Scan(
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5],
		&resource.Supply, &maxSupply, &state, &resource.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	targets := []*solana.Pubkey{
		&resource.Address, &resource.Store, &resource.Owner,
		&resource.Resource, &resource.Vault, &resource.VaultOwner,
	}
	for i, target := range targets {
		if *target, err = solana.PubkeyFromBase58(cols[i]); err != nil {
			return nil, err
		}
	}
	if maxSupply.Valid {
		value := uint64(maxSupply.Int64)
		resource.MaxSupply = &value
	}
	resource.State = domain.SellingResourceState(state)

	return &resource, nil
}

func (r *MySQLMembershipRepository) UpdateSellingResource(ctx context.Context, address solana.Pubkey, supply uint64, state domain.SellingResourceState) error {
	query := `UPDATE selling_resources SET supply = ?, state = ? WHERE address = ?`
	result, err := r.db.ExecContext(ctx, query, supply, int(state), address.String())
	if err != nil {
		return translateError(err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MySQLMembershipRepository) CreateMarket(ctx context.Context, market *domain.Market) error {
	query := `
        INSERT INTO markets (address, store, selling_resource, treasury_mint, treasury_holder,
            treasury_owner, owner, name, description, mutable, price, pieces_in_one_wallet,
            start_date, end_date, state, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	var pieces sql.NullInt64
	if market.PiecesInOneWallet != nil {
		pieces = sql.NullInt64{Int64: int64(*market.PiecesInOneWallet), Valid: true}
	}
	var endDate sql.NullTime
	if market.EndDate != nil {
		endDate = sql.NullTime{Time: *market.EndDate, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		market.Address.String(), market.Store.String(), market.SellingResource.String(),
		market.TreasuryMint.String(), market.TreasuryHolder.String(), market.TreasuryOwner.String(),
		market.Owner.String(), market.Name, market.Description, market.Mutable,
		market.Price, pieces, market.StartDate, endDate, int(market.State), market.CreatedAt)
	return translateError(err)
}

func (r *MySQLMembershipRepository) GetMarket(ctx context.Context, address solana.Pubkey) (*domain.Market, error) {
	query := `
        SELECT address, store, selling_resource, treasury_mint, treasury_holder,
            treasury_owner, owner, name, description, mutable, price, pieces_in_one_wallet,
            start_date, end_date, state, created_at
        FROM markets WHERE address = ?
    `

	var market domain.Market
	var cols [7]string
	var pieces sql.NullInt64
	var endDate sql.NullTime
	var state int

	err := r.db.QueryRowContext(ctx, query, address.String()).Scan(
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6],
		&market.Name, &market.Description, &market.Mutable, &market.Price, &pieces,
		&market.StartDate, &endDate, &state, &market.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	targets := []*solana.Pubkey{
		&market.Address, &market.Store, &market.SellingResource, &market.TreasuryMint,
		&market.TreasuryHolder, &market.TreasuryOwner, &market.Owner,
	}
	for i, target := range targets {
		if *target, err = solana.PubkeyFromBase58(cols[i]); err != nil {
			return nil, err
		}
	}
	if pieces.Valid {
		value := uint64(pieces.Int64)
		market.PiecesInOneWallet = &value
	}
	if endDate.Valid {
		market.EndDate = &endDate.Time
	}
	market.State = domain.MarketState(state)

	return &market, nil
}
