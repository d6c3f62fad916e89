package billing

import (
	"fmt"

	"auction_market/internal/domain/entity"
	"auction_market/internal/domain/service/ledger"
)

// strategy собирает ровно одну транзакцию баланса для активируемого
// счёта. Знак определяется типом счёта.
type strategy func(bill *entity.Bill) (*entity.Transaction, error)

func depositTransaction(bill *entity.Bill) (*entity.Transaction, error) {
	return ledger.NewDeposit(bill.ClientID, bill.ID, bill.Amount, activationComment(bill))
}

func expenseTransaction(bill *entity.Bill) (*entity.Transaction, error) {
	return ledger.NewExpense(bill.ClientID, bill.ID, bill.Amount, activationComment(bill))
}

// Набор стратегий закрыт и мал, поэтому вместо динамического реестра —
// таблица по типу счёта.
//
//	prepay     -> deposit (+)
//	proceeds   -> deposit (+)
//	sell       -> expense (-)
//	commission -> expense (-)
var strategies = map[entity.BillType]strategy{ //nolint:gochecknoglobals
	entity.BillTypePrepay:     depositTransaction,
	entity.BillTypeProceeds:   depositTransaction,
	entity.BillTypeSell:       expenseTransaction,
	entity.BillTypeCommission: expenseTransaction,
}

func activationComment(bill *entity.Bill) string {
	return fmt.Sprintf("bill #%d %s activation", bill.ID, bill.Type)
}
