package v1

import (
	"net/http"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", GetGoals)
		r.POST("", CreateGoals)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}

	// Saving progress
	{
		r.OPTIONS("/:id/progress", OptionsGoalProgress)
		r.POST("/:id/progress", AddGoalProgress)
	}

	// Completion
	{
		r.OPTIONS("/:id/complete", OptionsGoalComplete)
		r.POST("/:id/complete", CompleteGoal)
	}
}

// OptionsGoalList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Router			/v1/goals [options]
func OptionsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsGoalDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/goals/{id} [options]
func OptionsGoalDetail(c *gin.Context) {
	_, err := getGoalResource(c)
	if err != nil {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// OptionsGoalProgress returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/goals/{id}/progress [options]
func OptionsGoalProgress(c *gin.Context) {
	_, err := getGoalResource(c)
	if err != nil {
		return
	}

	httputil.OptionsPost(c)
}

// OptionsGoalComplete returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/goals/{id}/complete [options]
func OptionsGoalComplete(c *gin.Context) {
	_, err := getGoalResource(c)
	if err != nil {
		return
	}

	httputil.OptionsPost(c)
}

// getGoalResource verifies that the goal from the URL parameters exists and returns it.
//
// It always returns the resource with a nil error or an empty resource with
// an error that has already been written to the context.
func getGoalResource(c *gin.Context) (models.Goal, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return models.Goal{}, err
	}

	var goal models.Goal
	err := models.DB.First(&goal, &models.Goal{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Goal{}, err
	}

	return goal, nil
}

// CreateGoals creates new goals
//
//	@Summary		Create goals
//	@Description	Creates new savings goals
//	@Tags			Goals
//	@Produce		json
//	@Success		201		{object}	GoalCreateResponse
//	@Failure		400		{object}	GoalCreateResponse
//	@Failure		500		{object}	GoalCreateResponse
//	@Param			goals	body		[]GoalEditable	true	"Goals"
//	@Router			/v1/goals [post]
func CreateGoals(c *gin.Context) {
	var editables []GoalEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalCreateResponse{
			Error: &s,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GoalCreateResponse{}

	for _, editable := range editables {
		goal := editable.model()

		dbErr := models.DB.Create(&goal).Error
		if dbErr != nil {
			status = r.appendError(dbErr, status)
			continue
		}

		data := newGoal(c, goal)
		r.Data = append(r.Data, GoalResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetGoals returns a list of goals filtered by the query parameters
//
//	@Summary		Get goals
//	@Description	Returns a list of savings goals
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalListResponse
//	@Failure		400	{object}	GoalListResponse
//	@Failure		500	{object}	GoalListResponse
//	@Router			/v1/goals [get]
//	@Param			name		query	string	false	"Filter by name"
//	@Param			category	query	string	false	"Filter by category"
//	@Param			completed	query	bool	false	"Is the target amount reached?"
//	@Param			note		query	string	false	"Filter by note"
//	@Param			search		query	string	false	"Search for this text in name and note"
//	@Param			offset		query	uint	false	"The offset of the first goal returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of goals to return. Defaults to 50."
func GetGoals(c *gin.Context) {
	var filter GoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, GoalListResponse{
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

	if slices.Contains(setFields, "Completed") {
		if filter.Completed {
			q = q.Where("current_amount >= target_amount")
		} else {
			q = q.Where("current_amount < target_amount")
		}
	}

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 goals and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var goals []models.Goal
	err := q.Find(&goals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Goal, 0, len(goals))
	for _, goal := range goals {
		data = append(data, newGoal(c, goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetGoal returns a specific goal
//
//	@Summary		Get goal
//	@Description	Returns a specific savings goal
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	GoalResponse
//	@Failure		404	{object}	GoalResponse
//	@Failure		500	{object}	GoalResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/goals/{id} [get]
func GetGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, &models.Goal{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	data := newGoal(c, goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// UpdateGoal updates a goal
//
//	@Summary		Update goal
//	@Description	Updates an existing goal. Only values to be updated need to be specified.
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	GoalResponse
//	@Failure		400		{object}	GoalResponse
//	@Failure		404		{object}	GoalResponse
//	@Failure		500		{object}	GoalResponse
//	@Param			id		path		URIID			true	"ID formatted as string"
//	@Param			goal	body		GoalEditable	true	"Goal"
//	@Router			/v1/goals/{id} [patch]
func UpdateGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, &models.Goal{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	// Start from the stored values so that fields not in the request body keep
	// their current state, most importantly the current amount.
	editable := GoalEditable{
		Name:          goal.Name,
		Category:      goal.Category,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      goal.Deadline,
		Icon:          goal.Icon,
		Note:          goal.Note,
	}
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	data := newGoal(c, goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// DeleteGoal deletes a goal
//
//	@Summary		Delete goal
//	@Description	Deletes a savings goal
//	@Tags			Goals
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/goals/{id} [delete]
func DeleteGoal(c *gin.Context) {
	goal, err := getGoalResource(c)
	if err != nil {
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// AddGoalProgress adds saved money to a goal
//
//	@Summary		Add progress
//	@Description	Adds the amount to the saved total of the goal. The saved total never exceeds the target amount.
//	@Tags			Goals
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	GoalResponse
//	@Failure		400			{object}	GoalResponse
//	@Failure		404			{object}	GoalResponse
//	@Failure		500			{object}	GoalResponse
//	@Param			id			path		URIID					true	"ID formatted as string"
//	@Param			progress	body		GoalProgressEditable	true	"Progress"
//	@Router			/v1/goals/{id}/progress [post]
func AddGoalProgress(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, &models.Goal{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	var editable GoalProgressEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	err = goal.AddProgress(models.DB, editable.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	data := newGoal(c, goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// CompleteGoal marks a goal as reached
//
//	@Summary		Complete goal
//	@Description	Sets the saved total of the goal to the target amount
//	@Tags			Goals
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	GoalResponse
//	@Failure		404	{object}	GoalResponse
//	@Failure		500	{object}	GoalResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/goals/{id}/complete [post]
func CompleteGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{
			Error: &s,
		})
		return
	}

	var goal models.Goal
	err := models.DB.First(&goal, &models.Goal{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	err = goal.Complete(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	data := newGoal(c, goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}
