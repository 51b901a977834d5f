package dto

import (
	"github.com/TyroGames/api-sub001/internal/core/domain"
)

// AccountResponse defines the chart-of-accounts data exposed to clients.
type AccountResponse struct {
	AccountID     string `json:"accountID"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	NormalBalance string `json:"normalBalance"`
	AllowsEntries bool   `json:"allowsEntries"`
	IsActive      bool   `json:"isActive"`
}

// VoucherTypeResponse defines the data returned for a voucher type.
type VoucherTypeResponse struct {
	VoucherTypeID string `json:"voucherTypeID"`
	Name          string `json:"name"`
	Prefix        string `json:"prefix"`
	Padding       int    `json:"padding"`
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	FiscalPeriodID string `json:"fiscalPeriodID"`
	Name           string `json:"name"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	IsClosed       bool   `json:"isClosed"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		NormalBalance: string(a.NormalBalance),
		AllowsEntries: a.AllowsEntries,
		IsActive:      a.IsActive,
	}
}

// ToVoucherTypeResponse converts a domain.VoucherType to VoucherTypeResponse.
func ToVoucherTypeResponse(t *domain.VoucherType) VoucherTypeResponse {
	return VoucherTypeResponse{
		VoucherTypeID: t.VoucherTypeID,
		Name:          t.Name,
		Prefix:        t.Prefix,
		Padding:       t.Padding,
	}
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to FiscalPeriodResponse.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		FiscalPeriodID: p.FiscalPeriodID,
		Name:           p.Name,
		StartDate:      p.StartDate.Format("2006-01-02"),
		EndDate:        p.EndDate.Format("2006-01-02"),
		IsClosed:       p.IsClosed,
	}
}
