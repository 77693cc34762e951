package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/kuronje-indexer/internal/domain"
)

const (
	MAX_PAGE_SIZE     = 100
	DEFAULT_PAGE_SIZE = 20
	DEFAULT_LEADERS   = 10
	MAX_LEADERBOARD   = 100
)

// PaginationParams holds limit and offset shared by list endpoints
type PaginationParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// normalize caps the limit and restores the default for non positive values
func (p *PaginationParams) normalize() {
	if p.Limit <= 0 {
		p.Limit = DEFAULT_PAGE_SIZE
	}
	if p.Limit > MAX_PAGE_SIZE {
		p.Limit = MAX_PAGE_SIZE
	}
}

// ListTokensQueryParams holds query parameters for GET /tokens
type ListTokensQueryParams struct {
	PaginationParams
	Owner    *string `form:"owner"`
	Revealed *bool   `form:"revealed"`
	Burned   *bool   `form:"burned"`
}

// ListTransfersQueryParams holds query parameters for GET /transfers
type ListTransfersQueryParams struct {
	PaginationParams
	TokenID *uint64 `form:"token_id"`
	Address *string `form:"address"`
}

// LeaderboardQueryParams holds query parameters for GET /owners/leaderboard
type LeaderboardQueryParams struct {
	Limit int `form:"limit,default=10"`
}

// ParsePaginationQuery parses limit and offset only
func ParsePaginationQuery(c *gin.Context) (*PaginationParams, error) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.normalize()
	return &params, nil
}

// ParseListTokensQuery parses query parameters for GET /tokens
func ParseListTokensQuery(c *gin.Context) (*ListTokensQueryParams, error) {
	var params ListTokensQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.normalize()

	if params.Owner != nil {
		owner, err := normalizeAddress(*params.Owner)
		if err != nil {
			return nil, err
		}
		params.Owner = &owner
	}

	return &params, nil
}

// ParseListTransfersQuery parses query parameters for GET /transfers
func ParseListTransfersQuery(c *gin.Context) (*ListTransfersQueryParams, error) {
	var params ListTransfersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.normalize()

	if params.Address != nil {
		address, err := normalizeAddress(*params.Address)
		if err != nil {
			return nil, err
		}
		params.Address = &address
	}

	return &params, nil
}

// ParseLeaderboardQuery parses query parameters for GET /owners/leaderboard
func ParseLeaderboardQuery(c *gin.Context) (*LeaderboardQueryParams, error) {
	var params LeaderboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = DEFAULT_LEADERS
	}
	if params.Limit > MAX_LEADERBOARD {
		params.Limit = MAX_LEADERBOARD
	}

	return &params, nil
}

func normalizeAddress(address string) (string, error) {
	if !domain.IsValidAddress(address) {
		return "", fmt.Errorf("invalid address: %q", address)
	}
	return domain.NormalizeAddress(address), nil
}
