package handlers

import (
	"net/http"

	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// BankHandler exposes the ledger operations: account setup, balance,
// transfers and transaction history.
type BankHandler struct {
	ledger portssvc.LedgerSvcFacade
}

func NewBankHandler(ledger portssvc.LedgerSvcFacade) *BankHandler {
	return &BankHandler{ledger: ledger}
}

func registerBankRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := NewBankHandler(ledger)

	bank := rg.Group("/bank")
	bank.POST("/setup", h.SetupAccount)
	bank.GET("/account", h.GetAccount)
	bank.POST("/transfer", h.Transfer)
	bank.GET("/transactions", h.ListTransactions)
}

// SetupAccount godoc
// @Summary Set up a bank account
// @Description Creates the caller's simulated bank account with the seeded starting balance.
// @Tags bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param setup body dto.CreateBankAccountRequest true "Account number and secret"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /bank/setup [post]
func (h *BankHandler) SetupAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.ledger.CreateBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "bank account created", gin.H{"account": dto.ToBankAccountResponse(account)})
}

// GetAccount godoc
// @Summary Get the caller's bank account
// @Tags bank
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]interface{}
// @Router /bank/account [get]
func (h *BankHandler) GetAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.ledger.GetAccountForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"account": dto.ToBankAccountResponse(account)})
}

// Transfer godoc
// @Summary Transfer between accounts
// @Description Moves an amount between two accounts, authenticated by the source account's secret.
// @Tags bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResult
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /bank/transfer [post]
func (h *BankHandler) Transfer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledger.Transfer(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "transfer completed", gin.H{
		"transaction": result.Transaction,
		"newBalance":  result.NewBalance,
	})
}

// ListTransactions godoc
// @Summary List the caller's transactions
// @Description Returns all ledger transactions touching the caller's account, newest first.
// @Tags bank
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TransactionResponse
// @Router /bank/transactions [get]
func (h *BankHandler) ListTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txns, err := h.ledger.ListTransactionsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"transactions": dto.ToTransactionResponses(txns)})
}
