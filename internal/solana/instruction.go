package solana

// AccountMeta describes one account an instruction touches, with its access
// flags as the ledger runtime expects them.
type AccountMeta struct {
	Pubkey     Pubkey `json:"pubkey"`
	IsWritable bool   `json:"is_writable"`
	IsSigner   bool   `json:"is_signer"`
}

func Meta(pk Pubkey) AccountMeta {
	return AccountMeta{Pubkey: pk}
}

func (m AccountMeta) Writable() AccountMeta {
	m.IsWritable = true
	return m
}

func (m AccountMeta) Signer() AccountMeta {
	m.IsSigner = true
	return m
}

// Instruction is one delegated call into a ledger program: the target
// program, the ordered account list, and the encoded call data.
type Instruction struct {
	ProgramID Pubkey        `json:"program_id"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      []byte        `json:"data"`
}

// SigningContext is the capability proof for signing as a derived identity.
// It carries the full seed tuple, bump included, so the runtime can verify
// the signer address without any private key being involved.
type SigningContext struct {
	Seeds [][]byte
}

// Address re-derives the identity this context signs for.
func (s SigningContext) Address(programID Pubkey) (Pubkey, error) {
	return CreateProgramAddress(s.Seeds, programID)
}
