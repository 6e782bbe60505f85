package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterImportRoutes registers the routes for imports
func RegisterImportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsImport)
		r.POST("", PostImport)
	}
}

// importDocument is the file format written by the export endpoint. Only the
// collections present in the file are restored, absent collections are left
// untouched.
type importDocument struct {
	Version string     `json:"version"`
	Data    importData `json:"data"`
}

type importData struct {
	Incomes  *[]models.Income      `json:"income"`
	Expenses *[]models.Expense     `json:"expense"`
	Debts    *[]models.Debt        `json:"debt"`
	Payments *[]models.DebtPayment `json:"debtpayment"`
	Goals    *[]models.Goal        `json:"goal"`
	Settings *[]models.Setting     `json:"setting"`
}

type ImportResponse struct {
	Error *string `json:"error" example:"you must send a file to this endpoint"` // The error, if any occurred
}

// OptionsImport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Export & Import
//	@Success		204
//	@Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// PostImport restores a backup file
//
//	@Summary		Import
//	@Description	Restores a file written by the export endpoint. The file is parsed completely before anything is written, a file with any invalid record restores nothing.
//	@Tags			Export & Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		204
//	@Failure		400		{object}	ImportResponse
//	@Failure		500		{object}	ImportResponse
//	@Param			file	formData	file	true	"File to import"
//	@Router			/v1/import [post]
func PostImport(c *gin.Context) {
	f, err := getUploadedFile(c, ".json")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	content, err := io.ReadAll(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	// Parse the whole file before touching the database. A file that does not
	// parse must not restore anything.
	var document importDocument
	err = json.Unmarshal(content, &document)
	if err != nil {
		s := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return restore(tx, document.Data)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// restore replaces all collections present in the import with the imported
// records. It runs inside a transaction so that an invalid record rolls back
// the whole restore.
func restore(tx *gorm.DB, data importData) error {
	if data.Incomes != nil {
		if err := replaceCollection(tx, &models.Income{}, *data.Incomes); err != nil {
			return err
		}
	}

	if data.Expenses != nil {
		if err := replaceCollection(tx, &models.Expense{}, *data.Expenses); err != nil {
			return err
		}
	}

	// IDs are regenerated on insert, so payments need to be mapped from the
	// debt IDs in the file to the IDs of the restored debts.
	debtIDs := make(map[uuid.UUID]uuid.UUID)
	if data.Debts != nil {
		// Payments reference debts, so they have to go first
		if err := clearCollection(tx, &models.DebtPayment{}); err != nil {
			return err
		}

		if err := clearCollection(tx, &models.Debt{}); err != nil {
			return err
		}

		for _, debt := range *data.Debts {
			oldID := debt.ID
			if err := tx.Create(&debt).Error; err != nil {
				return err
			}
			debtIDs[oldID] = debt.ID
		}
	}

	if data.Payments != nil {
		if err := clearCollection(tx, &models.DebtPayment{}); err != nil {
			return err
		}

		for _, payment := range *data.Payments {
			if newID, ok := debtIDs[payment.DebtID]; ok {
				payment.DebtID = newID
			}

			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		}
	}

	if data.Goals != nil {
		if err := replaceCollection(tx, &models.Goal{}, *data.Goals); err != nil {
			return err
		}
	}

	if data.Settings != nil {
		if err := clearCollection(tx, &models.Setting{}); err != nil {
			return err
		}

		for _, setting := range *data.Settings {
			if err := tx.Create(&setting).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// replaceCollection drops all records of a model and inserts the imported ones.
func replaceCollection[T any](tx *gorm.DB, model *T, records []T) error {
	if err := clearCollection(tx, model); err != nil {
		return err
	}

	for _, record := range records {
		record := record
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}

func clearCollection(tx *gorm.DB, model any) error {
	return tx.Unscoped().Where("true").Delete(model).Error
}
