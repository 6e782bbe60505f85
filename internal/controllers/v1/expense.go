package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// OptionsExpenseList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsExpenseDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, &models.Expense{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateExpenses creates new expenses
//
//	@Summary		Create expenses
//	@Description	Creates new expenses
//	@Tags			Expenses
//	@Produce		json
//	@Success		201			{object}	ExpenseCreateResponse
//	@Failure		400			{object}	ExpenseCreateResponse
//	@Failure		500			{object}	ExpenseCreateResponse
//	@Param			expenses	body		[]ExpenseEditable	true	"Expenses"
//	@Router			/v1/expenses [post]
func CreateExpenses(c *gin.Context) {
	var editables []ExpenseEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ExpenseCreateResponse{}

	for _, editable := range editables {
		expense := editable.model()

		dbErr := models.DB.Create(&expense).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newExpense(c, expense)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetExpenses returns a list of expenses filtered by the query parameters
//
//	@Summary		Get expenses
//	@Description	Returns a list of expenses
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseListResponse
//	@Failure		400	{object}	ExpenseListResponse
//	@Failure		500	{object}	ExpenseListResponse
//	@Router			/v1/expenses [get]
//	@Param			category			query	string	false	"Filter by category"
//	@Param			paid				query	bool	false	"Is the expense paid?"
//	@Param			month				query	string	false	"Filter by month"
//	@Param			fromMonth			query	string	false	"From this month"
//	@Param			untilMonth			query	string	false	"Until this month"
//	@Param			note				query	string	false	"Filter by note"
//	@Param			amount				query	string	false	"Filter by amount"
//	@Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
//	@Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
//	@Param			offset				query	uint	false	"The offset of the first expense returned. Defaults to 0."
//	@Param			limit				query	int		false	"Maximum number of expenses to return. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("due_date ASC, created_at ASC").
		Where(&where, queryFields...)

	q, err := monthRangeFilter(q, "expenses", filter.Month, filter.FromMonth, filter.UntilMonth, setFields)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	q = amountFilters(q, filter.AmountLessOrEqual, filter.AmountMoreOrEqual, setFields)
	q = noteFilter(q, setFields, filter.Note)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 expenses and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var expenses []models.Expense
	err = q.Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetExpense returns a specific expense
//
//	@Summary		Get expense
//	@Description	Returns a specific expense
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseResponse
//	@Failure		400	{object}	ExpenseResponse
//	@Failure		404	{object}	ExpenseResponse
//	@Failure		500	{object}	ExpenseResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{
			Error: &s,
		})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, &models.Expense{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// UpdateExpense updates an expense
//
//	@Summary		Update expense
//	@Description	Updates an existing expense. Only values to be updated need to be specified.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	ExpenseResponse
//	@Failure		400		{object}	ExpenseResponse
//	@Failure		404		{object}	ExpenseResponse
//	@Failure		500		{object}	ExpenseResponse
//	@Param			id		path		URIID			true	"ID formatted as string"
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{
			Error: &s,
		})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, &models.Expense{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	var editable ExpenseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&expense).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &s,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, &models.Expense{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
