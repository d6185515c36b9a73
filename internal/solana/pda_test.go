package solana

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProgramAddressDeterministic(t *testing.T) {
	programID := MustPubkey("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")
	seeds := [][]byte{[]byte("reward_center"), bytes.Repeat([]byte{7}, 32)}

	addr1, bump1, err := FindProgramAddress(seeds, programID)
	require.NoError(t, err)
	addr2, bump2, err := FindProgramAddress(seeds, programID)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, bump1, bump2)
}

func TestFindProgramAddressBumpIsCanonical(t *testing.T) {
	programID := MustPubkey("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")
	seeds := [][]byte{[]byte("auction_house")}

	addr, bump, err := FindProgramAddress(seeds, programID)
	require.NoError(t, err)

	// Re-deriving with the returned bump reproduces the address.
	withBump := append(append([][]byte{}, seeds...), []byte{bump})
	again, err := CreateProgramAddress(withBump, programID)
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	// Every bump above the canonical one must have been rejected as on-curve.
	for b := 255; b > int(bump); b-- {
		candidate := append(append([][]byte{}, seeds...), []byte{uint8(b)})
		_, err := CreateProgramAddress(candidate, programID)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	}
}

func TestFindProgramAddressDiffersByProgram(t *testing.T) {
	seeds := [][]byte{[]byte("signer")}

	addrA, _, err := FindProgramAddress(seeds, MustPubkey("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk"))
	require.NoError(t, err)
	addrB, _, err := FindProgramAddress(seeds, MustPubkey("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS"))
	require.NoError(t, err)

	assert.NotEqual(t, addrA, addrB)
}

func TestCreateProgramAddressSeedLimits(t *testing.T) {
	programID := MustPubkey("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")

	tooLong := [][]byte{bytes.Repeat([]byte{1}, 33)}
	_, err := CreateProgramAddress(tooLong, programID)
	assert.ErrorIs(t, err, ErrSeedTooLong)

	var tooMany [][]byte
	for i := 0; i < 17; i++ {
		tooMany = append(tooMany, []byte{byte(i)})
	}
	_, err = CreateProgramAddress(tooMany, programID)
	assert.ErrorIs(t, err, ErrTooManySeeds)
}

func TestPubkeyBase58RoundTrip(t *testing.T) {
	original := "hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk"
	pk, err := PubkeyFromBase58(original)
	require.NoError(t, err)
	assert.Equal(t, original, pk.String())

	_, err = PubkeyFromBase58("not-a-key")
	assert.Error(t, err)
}

func TestFindAssociatedTokenAddressDeterministic(t *testing.T) {
	owner := MustPubkey("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")
	mintA := MustPubkey("So11111111111111111111111111111111111111112")
	mintB := MustPubkey("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

	ata1, _, err := FindAssociatedTokenAddress(owner, mintA)
	require.NoError(t, err)
	ata2, _, err := FindAssociatedTokenAddress(owner, mintA)
	require.NoError(t, err)
	ata3, _, err := FindAssociatedTokenAddress(owner, mintB)
	require.NoError(t, err)

	assert.Equal(t, ata1, ata2)
	assert.NotEqual(t, ata1, ata3)
}

func TestSigningContextAddress(t *testing.T) {
	programID := MustPubkey("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")
	seeds := [][]byte{[]byte("reward_center"), bytes.Repeat([]byte{3}, 32)}

	addr, bump, err := FindProgramAddress(seeds, programID)
	require.NoError(t, err)

	ctx := SigningContext{Seeds: append(append([][]byte{}, seeds...), []byte{bump})}
	derived, err := ctx.Address(programID)
	require.NoError(t, err)
	assert.Equal(t, addr, derived)
}
