package v1

import (
	"net/http"
	"time"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterDebtRoutes registers the routes for debts with
// the RouterGroup that is passed.
func RegisterDebtRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDebtList)
		r.GET("", GetDebts)
		r.POST("", CreateDebts)
	}

	// Debt with ID
	{
		r.OPTIONS("/:id", OptionsDebtDetail)
		r.GET("/:id", GetDebt)
		r.PATCH("/:id", UpdateDebt)
		r.DELETE("/:id", DeleteDebt)
	}

	// Payments against a debt
	{
		r.OPTIONS("/:id/payments", OptionsDebtPayments)
		r.GET("/:id/payments", GetDebtPayments)
		r.POST("/:id/payments", CreateDebtPayment)
	}

	// One-step settlement
	{
		r.OPTIONS("/:id/settle", OptionsDebtSettle)
		r.POST("/:id/settle", SettleDebt)
	}
}

// OptionsDebtList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Debts
//	@Success		204
//	@Router			/v1/debts [options]
func OptionsDebtList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsDebtDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Debts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/debts/{id} [options]
func OptionsDebtDetail(c *gin.Context) {
	_, err := getDebtResource(c)
	if err != nil {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsDebtPayments returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Debts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/debts/{id}/payments [options]
func OptionsDebtPayments(c *gin.Context) {
	_, err := getDebtResource(c)
	if err != nil {
		return
	}

	httputil.OptionsGetPost(c)
}

// OptionsDebtSettle returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Debts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/debts/{id}/settle [options]
func OptionsDebtSettle(c *gin.Context) {
	_, err := getDebtResource(c)
	if err != nil {
		return
	}

	httputil.OptionsPost(c)
}

// getDebtResource verifies that the debt from the URL parameters exists and returns it.
//
// It always returns the resource with a nil error or an empty resource with
// an error that has already been written to the context.
func getDebtResource(c *gin.Context) (models.Debt, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return models.Debt{}, err
	}

	var debt models.Debt
	err := models.DB.First(&debt, &models.Debt{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Debt{}, err
	}

	return debt, nil
}

// CreateDebts creates new debts
//
//	@Summary		Create debts
//	@Description	Creates new debts. The remaining amount defaults to the original amount when it is not set.
//	@Tags			Debts
//	@Produce		json
//	@Success		201		{object}	DebtCreateResponse
//	@Failure		400		{object}	DebtCreateResponse
//	@Failure		500		{object}	DebtCreateResponse
//	@Param			debts	body		[]DebtEditable	true	"Debts"
//	@Router			/v1/debts [post]
func CreateDebts(c *gin.Context) {
	var editables []DebtEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DebtCreateResponse{}

	for _, editable := range editables {
		debt := editable.model()

		dbErr := models.DB.Create(&debt).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newDebt(c, debt)
		r.Data = append(r.Data, DebtResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetDebts returns a list of debts filtered by the query parameters
//
//	@Summary		Get debts
//	@Description	Returns a list of debts
//	@Tags			Debts
//	@Produce		json
//	@Success		200	{object}	DebtListResponse
//	@Failure		400	{object}	DebtListResponse
//	@Failure		500	{object}	DebtListResponse
//	@Router			/v1/debts [get]
//	@Param			name		query	string	false	"Filter by name"
//	@Param			direction	query	string	false	"Borrowed or lent"
//	@Param			status		query	string	false	"By settlement state"
//	@Param			installment	query	bool	false	"Only installment debts?"
//	@Param			note		query	string	false	"Filter by note"
//	@Param			search		query	string	false	"Search for this text in name and note"
//	@Param			offset		query	uint	false	"The offset of the first debt returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of debts to return. Defaults to 50."
func GetDebts(c *gin.Context) {
	var filter DebtQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, DebtListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("created_at ASC").
		Where(&where, queryFields...)

	q = debtStatusFilter(q, filter.Status, setFields)
	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 debts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var debts []models.Debt
	err := q.Find(&debts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Debt, 0, len(debts))
	for _, debt := range debts {
		data = append(data, newDebt(c, debt))
	}

	c.JSON(http.StatusOK, DebtListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// debtStatusFilter translates the derived settlement state into conditions on
// the stored amounts.
func debtStatusFilter(query *gorm.DB, statusFilter string, setFields []string) *gorm.DB {
	if !slices.Contains(setFields, "Status") {
		return query
	}

	switch models.DebtStatus(statusFilter) {
	case models.DebtStatusPending:
		return query.Where("remaining_amount = original_amount")
	case models.DebtStatusPaid:
		return query.Where("remaining_amount = 0")
	case models.DebtStatusPartiallyPaid:
		return query.Where("remaining_amount > 0 AND remaining_amount < original_amount")
	default:
		// An unknown state matches nothing
		return query.Where("1 = 0")
	}
}

// GetDebt returns a specific debt
//
//	@Summary		Get debt
//	@Description	Returns a specific debt
//	@Tags			Debts
//	@Produce		json
//	@Success		200	{object}	DebtResponse
//	@Failure		400	{object}	DebtResponse
//	@Failure		404	{object}	DebtResponse
//	@Failure		500	{object}	DebtResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/debts/{id} [get]
func GetDebt(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DebtResponse{
			Error: &s,
		})
		return
	}

	var debt models.Debt
	err := models.DB.First(&debt, &models.Debt{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &data})
}

// UpdateDebt updates a debt
//
//	@Summary		Update debt
//	@Description	Updates an existing debt. Only values to be updated need to be specified.
//	@Tags			Debts
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	DebtResponse
//	@Failure		400	{object}	DebtResponse
//	@Failure		404	{object}	DebtResponse
//	@Failure		500	{object}	DebtResponse
//	@Param			id	path		URIID			true	"ID formatted as string"
//	@Param			debt	body		DebtEditable	true	"Debt"
//	@Router			/v1/debts/{id} [patch]
func UpdateDebt(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DebtResponse{
			Error: &s,
		})
		return
	}

	var debt models.Debt
	err := models.DB.First(&debt, &models.Debt{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DebtEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	// Start from the stored values so that fields not in the request body keep
	// their current state, most importantly the remaining amount.
	remaining := debt.RemainingAmount
	editable := DebtEditable{
		Name:             debt.Name,
		Direction:        debt.Direction,
		OriginalAmount:   debt.OriginalAmount,
		RemainingAmount:  &remaining,
		Note:             debt.Note,
		DueDate:          debt.DueDate,
		Installment:      debt.Installment,
		InstallmentCount: debt.InstallmentCount,
	}
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&debt).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &data})
}

// DeleteDebt deletes a debt and its payment history
//
//	@Summary		Delete debt
//	@Description	Deletes a debt together with all payments recorded against it
//	@Tags			Debts
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/debts/{id} [delete]
func DeleteDebt(c *gin.Context) {
	debt, err := getDebtResource(c)
	if err != nil {
		return
	}

	err = debt.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetDebtPayments returns the payment history of a debt
//
//	@Summary		Get payments
//	@Description	Returns all payments recorded against the debt, oldest first
//	@Tags			Debts
//	@Produce		json
//	@Success		200	{object}	DebtPaymentListResponse
//	@Failure		400	{object}	DebtPaymentListResponse
//	@Failure		404	{object}	DebtPaymentListResponse
//	@Failure		500	{object}	DebtPaymentListResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/debts/{id}/payments [get]
func GetDebtPayments(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DebtPaymentListResponse{
			Error: &s,
		})
		return
	}

	var debt models.Debt
	err := models.DB.First(&debt, &models.Debt{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentListResponse{
			Error: &s,
		})
		return
	}

	payments, err := debt.PaymentHistory(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentListResponse{
			Error: &s,
		})
		return
	}

	data := make([]DebtPayment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newDebtPayment(c, payment))
	}

	c.JSON(http.StatusOK, DebtPaymentListResponse{Data: data})
}

// CreateDebtPayment records a payment against a debt
//
//	@Summary		Record payment
//	@Description	Records a payment against the debt and reduces its remaining amount. Payments larger than the remaining amount reduce it to exactly zero.
//	@Tags			Debts
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	DebtPaymentResponse
//	@Failure		400		{object}	DebtPaymentResponse
//	@Failure		404		{object}	DebtPaymentResponse
//	@Failure		500		{object}	DebtPaymentResponse
//	@Param			id		path		URIID				true	"ID formatted as string"
//	@Param			payment	body		DebtPaymentEditable	true	"Payment"
//	@Router			/v1/debts/{id}/payments [post]
func CreateDebtPayment(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DebtPaymentResponse{
			Error: &s,
		})
		return
	}

	var debt models.Debt
	err := models.DB.First(&debt, &models.Debt{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{
			Error: &s,
		})
		return
	}

	var editable DebtPaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{
			Error: &s,
		})
		return
	}

	if editable.Date.IsZero() {
		editable.Date = time.Now().UTC()
	}

	payment, err := debt.RecordPayment(models.DB, editable.Amount, editable.Date, editable.Note)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{
			Error: &s,
		})
		return
	}

	data := newDebtPayment(c, payment)
	c.JSON(http.StatusCreated, DebtPaymentResponse{Data: &data})
}

// SettleDebt settles a debt in one step
//
//	@Summary		Settle debt
//	@Description	Reduces the remaining amount of the debt to zero. The settlement is recorded as a closing payment over the remaining amount.
//	@Tags			Debts
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	DebtResponse
//	@Failure		400	{object}	DebtResponse
//	@Failure		404	{object}	DebtResponse
//	@Failure		500	{object}	DebtResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/debts/{id}/settle [post]
func SettleDebt(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DebtResponse{
			Error: &s,
		})
		return
	}

	var debt models.Debt
	err := models.DB.First(&debt, &models.Debt{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	_, err = debt.Settle(models.DB, time.Now().UTC(), "")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &s,
		})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &data})
}
