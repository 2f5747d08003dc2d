package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionBalanceRead      = "balance:read"
	PermissionTransactionRead  = "transaction:read"
	PermissionTransactionWrite = "transaction:write"
	PermissionGamePlay         = "game:play"
	PermissionChangePassword   = "user:change-password"

	// Affiliate permissions
	PermissionAffiliateRead = "affiliate:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	PlayerID     string   `json:"player_id"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionBalanceRead,
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionAffiliateRead,
		}
	case "affiliate":
		return []string{
			PermissionBalanceRead,
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionGamePlay,
			PermissionChangePassword,
			PermissionAffiliateRead,
		}
	case "user":
		return []string{
			PermissionBalanceRead,
			PermissionTransactionRead,
			PermissionTransactionWrite,
			PermissionGamePlay,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
