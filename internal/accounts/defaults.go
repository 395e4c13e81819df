package accounts

import "github.com/haulbook/haulbook/internal/model"

// DefaultChart returns the starter chart of accounts for a carrier company.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1.1.01.001", ReducedCode: 101, Name: "Caixa", Type: model.AccountTypeAsset, Description: "Cash on hand"},
		{Code: "1.1.01.002", ReducedCode: 102, Name: "Bancos Conta Movimento", Type: model.AccountTypeAsset, Description: "Checking accounts"},
		{Code: "1.1.02.001", ReducedCode: 110, Name: "Clientes a Receber", Type: model.AccountTypeAsset, Description: "Freight receivables"},
		{Code: "1.1.03.001", ReducedCode: 120, Name: "Adiantamentos a Terceiros", Type: model.AccountTypeAsset, Description: "Advances paid to carriers"},
		{Code: "2.1.01.001", ReducedCode: 201, Name: "Fornecedores", Type: model.AccountTypeLiability},
		{Code: "2.1.03.001", ReducedCode: 230, Name: "Fretes a Pagar", Type: model.AccountTypeLiability, Description: "Balances owed to third-party carriers"},
		{Code: "2.1.04.001", ReducedCode: 240, Name: "Impostos a Recolher", Type: model.AccountTypeLiability},
		{Code: "2.3.01.001", ReducedCode: 301, Name: "Capital Social", Type: model.AccountTypeEquity},
		{Code: "3.1.01.001", ReducedCode: 401, Name: "Receita de Fretes", Type: model.AccountTypeRevenue},
		{Code: "4.1.01.001", ReducedCode: 501, Name: "Fretes Subcontratados", Type: model.AccountTypeExpense, Description: "Third-party carriage cost"},
		{Code: "4.1.01.002", ReducedCode: 502, Name: "Pedágios", Type: model.AccountTypeExpense, Description: "Toll charges"},
		{Code: "4.1.01.003", ReducedCode: 503, Name: "Combustível", Type: model.AccountTypeExpense, Description: "Own fleet fuel"},
		{Code: "4.1.01.004", ReducedCode: 504, Name: "Manutenção de Veículos", Type: model.AccountTypeExpense},
	}
}
