package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeList)
		r.GET("", GetIncomes)
		r.POST("", CreateIncomes)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", GetIncome)
		r.PATCH("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

// OptionsIncomeList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Incomes
//	@Success		204
//	@Router			/v1/incomes [options]
func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsIncomeDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Incomes
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	var income models.Income
	err := models.DB.First(&income, &models.Income{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// CreateIncomes creates new incomes
//
//	@Summary		Create incomes
//	@Description	Creates new incomes
//	@Tags			Incomes
//	@Produce		json
//	@Success		201		{object}	IncomeCreateResponse
//	@Failure		400		{object}	IncomeCreateResponse
//	@Failure		500		{object}	IncomeCreateResponse
//	@Param			incomes	body		[]IncomeEditable	true	"Incomes"
//	@Router			/v1/incomes [post]
func CreateIncomes(c *gin.Context) {
	var editables []IncomeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := IncomeCreateResponse{}

	for _, editable := range editables {
		income := editable.model()

		dbErr := models.DB.Create(&income).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newIncome(c, income)
		r.Data = append(r.Data, IncomeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetIncomes returns a list of incomes filtered by the query parameters
//
//	@Summary		Get incomes
//	@Description	Returns a list of incomes
//	@Tags			Incomes
//	@Produce		json
//	@Success		200	{object}	IncomeListResponse
//	@Failure		400	{object}	IncomeListResponse
//	@Failure		500	{object}	IncomeListResponse
//	@Router			/v1/incomes [get]
//	@Param			type				query	string	false	"Filter by type"
//	@Param			received			query	bool	false	"Is the income received?"
//	@Param			month				query	string	false	"Filter by month"
//	@Param			fromMonth			query	string	false	"From this month"
//	@Param			untilMonth			query	string	false	"Until this month"
//	@Param			note				query	string	false	"Filter by note"
//	@Param			amount				query	string	false	"Filter by amount"
//	@Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
//	@Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
//	@Param			offset				query	uint	false	"The offset of the first income returned. Defaults to 0."
//	@Param			limit				query	int		false	"Maximum number of incomes to return. Defaults to 50."
func GetIncomes(c *gin.Context) {
	var filter IncomeQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, IncomeListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("expected_date ASC, created_at ASC").
		Where(&where, queryFields...)

	q, err := monthRangeFilter(q, "incomes", filter.Month, filter.FromMonth, filter.UntilMonth, setFields)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	q = amountFilters(q, filter.AmountLessOrEqual, filter.AmountMoreOrEqual, setFields)
	q = noteFilter(q, setFields, filter.Note)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 incomes and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var incomes []models.Income
	err = q.Find(&incomes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetIncome returns a specific income
//
//	@Summary		Get income
//	@Description	Returns a specific income
//	@Tags			Incomes
//	@Produce		json
//	@Success		200	{object}	IncomeResponse
//	@Failure		400	{object}	IncomeResponse
//	@Failure		404	{object}	IncomeResponse
//	@Failure		500	{object}	IncomeResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, IncomeResponse{
			Error: &s,
		})
		return
	}

	var income models.Income
	err := models.DB.First(&income, &models.Income{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// UpdateIncome updates an income
//
//	@Summary		Update income
//	@Description	Updates an existing income. Only values to be updated need to be specified.
//	@Tags			Incomes
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	IncomeResponse
//	@Failure		400		{object}	IncomeResponse
//	@Failure		404		{object}	IncomeResponse
//	@Failure		500		{object}	IncomeResponse
//	@Param			id		path		URIID			true	"ID formatted as string"
//	@Param			income	body		IncomeEditable	true	"Income"
//	@Router			/v1/incomes/{id} [patch]
func UpdateIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, IncomeResponse{
			Error: &s,
		})
		return
	}

	var income models.Income
	err := models.DB.First(&income, &models.Income{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var editable IncomeEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&income).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// DeleteIncome deletes an income
//
//	@Summary		Delete income
//	@Description	Deletes an income
//	@Tags			Incomes
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return
	}

	var income models.Income
	err := models.DB.First(&income, &models.Income{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
