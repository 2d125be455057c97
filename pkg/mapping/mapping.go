package mapping

import (
	"github.com/codesnap/conversion-pipeline/pkg/api"
	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// ToApiConversion converts a domain Conversion model to an API Conversion model.
func ToApiConversion(conv *models.Conversion) *api.Conversion {
	out := &api.Conversion{
		Id:           conv.Id,
		AccountId:    conv.AccountId,
		ImageRef:     conv.ImageRef,
		Filename:     conv.Filename,
		Framework:    conv.Framework,
		CSSFramework: conv.CSSFramework,
		Status:       string(conv.Status),
		ErrorMessage: conv.ErrorMessage,
		RetryCount:   conv.RetryCount,
		CreditCost:   conv.CreditCost,
		TokensUsed:   conv.TokensUsed,
		ProcessingMs: conv.ProcessingMs,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	}
	if conv.Result != nil {
		out.Result = &api.GeneratedCode{
			HTML: conv.Result.HTML,
			CSS:  conv.Result.CSS,
			JS:   conv.Result.JS,
		}
	}
	return out
}

// ToDomainNewConversion converts an API NewConversion model to a domain
// Conversion model. Status, cost and versioning are filled in by the
// handler and the storage layer.
func ToDomainNewConversion(newConv *api.NewConversion) *models.Conversion {
	return &models.Conversion{
		AccountId:    newConv.AccountId,
		ImageRef:     newConv.ImageRef,
		Filename:     newConv.Filename,
		Framework:    newConv.Framework,
		CSSFramework: newConv.CSSFramework,
	}
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		AccountId: account.AccountId,
		Email:     account.Email,
		Balance:   account.Balance,
		Reserved:  account.Reserved,
		CreatedAt: account.CreatedAt,
	}
}

// ToApiBalance converts a domain Balance model to an API Balance model.
func ToApiBalance(balance *models.Balance) *api.Balance {
	return &api.Balance{
		AccountId: balance.AccountId,
		Total:     balance.Total,
		Reserved:  balance.Reserved,
		Available: balance.Available,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:     entry.EntryID,
		AccountId:   entry.AccountID,
		Amount:      entry.Amount,
		Kind:        string(entry.Kind),
		Reference:   entry.Reference,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}
