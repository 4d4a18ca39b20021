package application

// Ledger account naming. Wallet accounts belong to end identities and are
// debitable by them; vault custody accounts and escrow accounts are
// debitable only under the capability string they were opened with, which
// never leaves the application layer.

// WalletAccount is an identity's external account for one asset.
func WalletAccount(owner, assetID string) string {
	return "wallet:" + owner + ":" + assetID
}

// vaultAccount is the custody account backing a maker's vault record.
func vaultAccount(makerID, assetID string) string {
	return "mm_vault:" + makerID + ":" + assetID
}

// vaultAuthority is the capability a vault custody account is debited
// under.
func vaultAuthority(makerID, assetID string) string {
	return "mm_vault_authority:" + makerID + ":" + assetID
}

// userEscrowAccount holds the user's collateral for one position.
func userEscrowAccount(positionID string) string {
	return "position_user_vault:" + positionID
}

// makerEscrowAccount holds the maker's collateral for one position.
func makerEscrowAccount(positionID string) string {
	return "position_mm_vault:" + positionID
}

// escrowAuthority is the capability both escrow accounts of a position are
// opened under; only settlement logic acting for that position holds it.
func escrowAuthority(positionID string) string {
	return "position_authority:" + positionID
}
