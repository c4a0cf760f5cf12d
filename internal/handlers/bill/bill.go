package bill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/clock"
	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/dto"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/internal/service/billservice"
	"github.com/GlebRadaev/billsplit/internal/watcher"
	"github.com/GlebRadaev/billsplit/pkg/auth"
	"github.com/GlebRadaev/billsplit/pkg/utils"
	"github.com/GlebRadaev/billsplit/pkg/validate"
)

//go:generate mockgen -source=bill.go -destination=mock_bill.go -package=bill

type Service interface {
	Viewer() string
	Create(ctx context.Context, goal domain.Nano, destination string) (*lifecycle.Snapshot, error)
	Get(ctx context.Context, id, viewer string) (*lifecycle.Snapshot, error)
	Cancel(ctx context.Context, id string) (*lifecycle.Snapshot, error)
	History(ctx context.Context, viewer string, page domain.Page) ([]billservice.HistoryRow, error)
	Resume(ctx context.Context, viewer string) (*lifecycle.Snapshot, bool, error)
	Balance(ctx context.Context) (domain.Nano, error)
	ShareLink(id string) (string, error)
	ShareQR(id string, size int) ([]byte, error)
}

type ContributeService interface {
	Contribute(ctx context.Context, bill *domain.Bill, amount domain.Nano) error
}

type RefundService interface {
	Refund(ctx context.Context, bill *domain.Bill) error
}

type Watcher interface {
	Mount(ctx context.Context, billID, viewer string) (*watcher.Session, error)
	Current() (*watcher.Session, bool)
	Unmount()
}

type BillHandler struct {
	billService       Service
	contributeService ContributeService
	refundService     RefundService
	watcher           Watcher
}

func New(billService Service, contributeService ContributeService, refundService RefundService, watcher Watcher) *BillHandler {
	return &BillHandler{
		billService:       billService,
		contributeService: contributeService,
		refundService:     refundService,
		watcher:           watcher,
	}
}

// Current godoc
//
//	@Summary		Get the open bill
//	@Description	Return the bill that is open right now. After a restart the last open bill is resumed.
//	@Tags			Bills
//	@Produce		json
//	@Param			Sender-Address	header		string	false	"Viewer address"
//	@Success		200				{object}	dto.BillViewResponseDTO
//	@Success		204				{object}	utils.Response	"No open bill"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/bills/current [get]
func (h *BillHandler) Current(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())

	if session, ok := h.watcher.Current(); ok && session.Viewer() == viewer {
		utils.RespondWithJSON(w, http.StatusOK, viewDTO(session.View()))
		return
	}

	snap, ok, err := h.billService.Resume(r.Context(), viewer)
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusNoContent, "No open bill")
		return
	}
	h.mount(w, r, snap.Bill.ID, viewer, http.StatusOK)
}

// CloseCurrent godoc
//
//	@Summary		Close the open bill
//	@Description	Stop the live updates of the open bill.
//	@Tags			Bills
//	@Success		204
//	@Router			/api/bills/current [delete]
func (h *BillHandler) CloseCurrent(w http.ResponseWriter, r *http.Request) {
	h.watcher.Unmount()
	w.WriteHeader(http.StatusNoContent)
}

// GetBill godoc
//
//	@Summary		Open a bill
//	@Description	Fetch a bill, make it the open one and start its live updates.
//	@Tags			Bills
//	@Produce		json
//	@Param			id				path		string	true	"Bill ID"
//	@Param			Sender-Address	header		string	false	"Viewer address"
//	@Success		200				{object}	dto.BillViewResponseDTO
//	@Failure		404				{object}	utils.Response	"Bill not found"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/bills/{id} [get]
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	h.mount(w, r, chi.URLParam(r, "id"), auth.Viewer(r.Context()), http.StatusOK)
}

// CreateBill godoc
//
//	@Summary		Create a bill
//	@Description	Create a bill owned by the connected wallet and open it.
//	@Tags			Bills
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateBillRequestViewDTO	true	"Goal in TON and receiver"
//	@Success		201		{object}	dto.BillViewResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		422		{object}	utils.Response	"Invalid goal or address"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/bills [post]
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillRequestViewDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal, err := validate.ParseTON(req.Goal)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	snap, err := h.billService.Create(r.Context(), domain.Nano(goal), req.DestinationAddress)
	if err != nil {
		respondError(w, err)
		return
	}
	h.mount(w, r, snap.Bill.ID, h.billService.Viewer(), http.StatusCreated)
}

// Contribute godoc
//
//	@Summary		Contribute to a bill
//	@Description	Send TON from the connected wallet to the bill's proxy wallet and record it in the ledger.
//	@Tags			Actions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Bill ID"
//	@Param			request	body		dto.ContributeRequestDTO	true	"Amount in TON"
//	@Success		202		{object}	dto.ActionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		403		{object}	utils.Response	"Bill is closed"
//	@Failure		409		{object}	utils.Response	"Rejected by wallet or already in progress"
//	@Failure		422		{object}	utils.Response	"Invalid amount"
//	@Failure		502		{object}	utils.Response	"Sent but not recorded"
//	@Router			/api/bills/{id}/contribute [post]
func (h *BillHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req dto.ContributeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount, err := validate.ParseTON(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	snap, err := h.billService.Get(r.Context(), id, h.billService.Viewer())
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.contributeService.Contribute(r.Context(), snap.Bill, domain.Nano(amount)); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.ActionResponseDTO{
		BillID: id,
		Action: "contribute",
		Amount: domain.Nano(amount).String(),
	})
}

// Refund godoc
//
//	@Summary		Refund a bill
//	@Description	Ask the proxy wallet of a timed-out bill to return the collected funds. Creator only.
//	@Tags			Actions
//	@Produce		json
//	@Param			id	path		string	true	"Bill ID"
//	@Success		202	{object}	dto.ActionResponseDTO
//	@Failure		403	{object}	utils.Response	"Refund not allowed"
//	@Failure		409	{object}	utils.Response	"Rejected by wallet or already in progress"
//	@Failure		502	{object}	utils.Response	"Sent but not recorded"
//	@Router			/api/bills/{id}/refund [post]
func (h *BillHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.billService.Get(r.Context(), id, h.billService.Viewer())
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.refundService.Refund(r.Context(), snap.Bill); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.ActionResponseDTO{
		BillID: id,
		Action: "refund",
		Amount: snap.Bill.Collected.String(),
	})
}

// Cancel godoc
//
//	@Summary		Cancel a bill
//	@Description	Cancel an active bill. Creator only.
//	@Tags			Actions
//	@Produce		json
//	@Param			id	path		string	true	"Bill ID"
//	@Success		200	{object}	dto.BillViewResponseDTO
//	@Failure		403	{object}	utils.Response	"Cancel not allowed"
//	@Failure		404	{object}	utils.Response	"Bill not found"
//	@Router			/api/bills/{id}/cancel [post]
func (h *BillHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	snap, err := h.billService.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshotDTO(snap, h.billService.Viewer()))
}

// Share godoc
//
//	@Summary		Share link of a bill
//	@Description	Telegram mini-app link that opens the bill.
//	@Tags			Share
//	@Produce		json
//	@Param			id	path		string	true	"Bill ID"
//	@Success		200	{object}	dto.ShareResponseDTO
//	@Router			/api/bills/{id}/share [get]
func (h *BillHandler) Share(w http.ResponseWriter, r *http.Request) {
	link, err := h.billService.ShareLink(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ShareResponseDTO{Link: link})
}

// ShareQR godoc
//
//	@Summary		Share QR code of a bill
//	@Description	PNG QR code of the share link.
//	@Tags			Share
//	@Produce		png
//	@Param			id		path	string	true	"Bill ID"
//	@Param			size	query	int		false	"Image size in pixels"
//	@Success		200
//	@Failure		422	{object}	utils.Response	"Invalid size"
//	@Router			/api/bills/{id}/share.png [get]
func (h *BillHandler) ShareQR(w http.ResponseWriter, r *http.Request) {
	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 2048 {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid size")
			return
		}
		size = n
	}

	png, err := h.billService.ShareQR(chi.URLParam(r, "id"), size)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		zap.L().Error("Failed to write QR code", zap.Error(err))
	}
}

// History godoc
//
//	@Summary		Bill history
//	@Description	Bills of the viewer, newest first.
//	@Tags			Bills
//	@Produce		json
//	@Param			limit			query		int		false	"Page size"
//	@Param			offset			query		int		false	"Page offset"
//	@Param			Sender-Address	header		string	false	"Viewer address"
//	@Success		200				{array}		dto.HistoryRowDTO
//	@Success		204				{object}	utils.Response	"No data available"
//	@Failure		422				{object}	utils.Response	"Wallet not connected"
//	@Router			/api/history [get]
func (h *BillHandler) History(w http.ResponseWriter, r *http.Request) {
	var page domain.Page
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid limit")
			return
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid offset")
			return
		}
		page.Offset = n
	}

	rows, err := h.billService.History(r.Context(), auth.Viewer(r.Context()), page)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(rows) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.HistoryRowDTO, 0, len(rows))
	for _, row := range rows {
		item := dto.HistoryRowDTO{
			ID:                 row.Item.ID,
			DestinationAddress: row.Item.DestinationAddress,
			Goal:               row.Item.Goal.String(),
			Status:             string(row.Item.Status),
			CreatedAt:          row.Item.CreatedAt.Format(time.RFC3339),
		}
		if row.Bill != nil {
			collected := row.Bill.Collected.String()
			item.Collected = &collected
			item.Status = string(row.Bill.Status)
		}
		response = append(response, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Balance godoc
//
//	@Summary		Wallet balance
//	@Description	Balance of the connected wallet.
//	@Tags			Wallet
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		422	{object}	utils.Response	"Wallet not connected"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/balance [get]
func (h *BillHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.billService.Balance(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Address: h.billService.Viewer(),
		Balance: balance.String(),
		Nano:    strconv.FormatUint(uint64(balance), 10),
	})
}

func (h *BillHandler) mount(w http.ResponseWriter, r *http.Request, id, viewer string, code int) {
	session, err := h.watcher.Mount(r.Context(), id, viewer)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, code, viewDTO(session.View()))
}

func respondError(w http.ResponseWriter, err error) {
	var unrecorded *domain.UnrecordedError
	switch {
	case errors.As(err, &unrecorded):
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Bill not found")
	case errors.Is(err, domain.ErrInvalidInput):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrBillClosed),
		errors.Is(err, domain.ErrRefundNotAllowed),
		errors.Is(err, domain.ErrCancelNotAllowed):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrActionInFlight),
		errors.Is(err, domain.ErrWalletRejected),
		errors.Is(err, domain.ErrTransferExpired):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("Request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func snapshotDTO(snap *lifecycle.Snapshot, viewer string) dto.BillViewResponseDTO {
	left := clock.Remaining(snap.Bill.CreatedAt, time.Now())
	return viewDTO(lifecycle.NewView(snap, viewer, left))
}

func viewDTO(v lifecycle.View) dto.BillViewResponseDTO {
	return dto.BillViewResponseDTO{
		Bill:             dto.BillFromDomain(v.Bill),
		SecondsRemaining: v.SecondsRemaining,
		Closed:           v.Closed,
		IsCreator:        v.IsCreator,
		ShowRefundAction: v.ShowRefundAction,
		Left:             v.Bill.Left().String(),
		Percent:          v.Bill.Percent(),
		Stale:            v.Stale,
	}
}
