package solana

import "encoding/binary"

const tokenInstructionTransfer = 3

// NewTokenTransferInstruction builds an SPL token transfer of the given raw
// amount from source to destination, authorized by owner.
func NewTokenTransferInstruction(source, destination, owner Pubkey, amount uint64) Instruction {
	data := make([]byte, 9)
	data[0] = tokenInstructionTransfer
	binary.LittleEndian.PutUint64(data[1:], amount)

	return Instruction{
		ProgramID: TokenProgramID,
		Accounts: []AccountMeta{
			Meta(source).Writable(),
			Meta(destination).Writable(),
			Meta(owner).Signer(),
		},
		Data: data,
	}
}
