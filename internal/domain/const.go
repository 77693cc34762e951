package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// CURSOR_KEY_PREFIX is the key_value_store prefix for projection cursors
	CURSOR_KEY_PREFIX = "projection_cursor"

	// Event signatures emitted by the collection contract
	TRANSFER_EVENT_SIGNATURE       = "Transfer(address,address,uint256)"
	TOKEN_MINTED_EVENT_SIGNATURE   = "TokenMinted(address,uint256,uint256,uint256)"
	TOKEN_REVEALED_EVENT_SIGNATURE = "TokenRevealed(uint256,uint256,address,uint256)"
)
