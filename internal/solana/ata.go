package solana

var (
	SystemProgramID          = MustPubkey("11111111111111111111111111111111")
	TokenProgramID           = MustPubkey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = MustPubkey("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	SysvarRentID             = MustPubkey("SysvarRent111111111111111111111111111111111")
)

// FindAssociatedTokenAddress derives the canonical token account for an
// (owner, mint) pair under the associated token program.
func FindAssociatedTokenAddress(owner, mint Pubkey) (Pubkey, uint8, error) {
	return FindProgramAddress(
		[][]byte{owner.Bytes(), TokenProgramID.Bytes(), mint.Bytes()},
		AssociatedTokenProgramID,
	)
}

// NewCreateAssociatedTokenAccountInstruction builds the create-ATA call used
// to provision reward token custody for a reward center.
func NewCreateAssociatedTokenAccountInstruction(payer, owner, mint, ata Pubkey) Instruction {
	return Instruction{
		ProgramID: AssociatedTokenProgramID,
		Accounts: []AccountMeta{
			Meta(payer).Writable().Signer(),
			Meta(ata).Writable(),
			Meta(owner),
			Meta(mint),
			Meta(SystemProgramID),
			Meta(TokenProgramID),
			Meta(SysvarRentID),
		},
	}
}
