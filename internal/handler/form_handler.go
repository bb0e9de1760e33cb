package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/engage-api/internal/handler/dto"
	"github.com/yourusername/engage-api/internal/service"
)

// FormHandler обрабатывает административные запросы к формам
type FormHandler struct {
	formService *service.FormService
}

// NewFormHandler создает новый обработчик форм
func NewFormHandler(formService *service.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// AddFormRequest представляет запрос создания формы целиком
type AddFormRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	IsSurvey  bool   `json:"is_survey"`
	Questions []struct {
		Text        string `json:"text" binding:"required"`
		Multiple    bool   `json:"multiple"`
		TextAllowed bool   `json:"text_allowed"`
		Options     []struct {
			Text      string `json:"text" binding:"required"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"options"`
	} `json:"questions" binding:"required,min=1"`
}

// UpdateTextRequest представляет запрос изменения текста
type UpdateTextRequest struct {
	ID   uint   `json:"id" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// AddForm создает форму с вопросами и вариантами в одной транзакции
func (h *FormHandler) AddForm(c *gin.Context) {
	var req AddFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateFormInput{
		Name:     req.Name,
		IsSurvey: req.IsSurvey,
	}
	for _, q := range req.Questions {
		question := service.CreateQuestionInput{
			Text:        q.Text,
			Multiple:    q.Multiple,
			TextAllowed: q.TextAllowed,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, service.CreateOptionInput{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		input.Questions = append(input.Questions, question)
	}

	form, err := h.formService.CreateForm(adminID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewFormResponse(form, true, false))
}

// GetForms возвращает формы администратора со счетчиками отметок
func (h *FormHandler) GetForms(c *gin.Context) {
	forms, err := h.formService.ListForms(adminID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": dto.NewFormResponseList(forms, false, true)})
}

// GetFormsWithIDs возвращает формы с идентификаторами для редактирования
func (h *FormHandler) GetFormsWithIDs(c *gin.Context) {
	forms, err := h.formService.ListForms(adminID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": dto.NewFormResponseList(forms, true, true)})
}

// UpdateQuestion меняет текст вопроса
func (h *FormHandler) UpdateQuestion(c *gin.Context) {
	var req UpdateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.formService.UpdateQuestionText(adminID(c), req.ID, req.Text); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question updated"})
}

// UpdateOption меняет текст варианта ответа
func (h *FormHandler) UpdateOption(c *gin.Context) {
	var req UpdateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.formService.UpdateOptionText(adminID(c), req.ID, req.Text); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "option updated"})
}

// DeleteForm каскадно удаляет форму
func (h *FormHandler) DeleteForm(c *gin.Context) {
	formID := c.MustGet("formID").(uint)

	if err := h.formService.DeleteForm(adminID(c), formID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "form deleted"})
}

// ResetResponses удаляет ответы пользователей на форму, сохраняя саму форму
func (h *FormHandler) ResetResponses(c *gin.Context) {
	formID := c.MustGet("formID").(uint)

	if err := h.formService.ResetResponses(adminID(c), formID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "responses reset"})
}

// Download экспортирует формы с распределением ответов в Excel
func (h *FormHandler) Download(c *gin.Context) {
	forms, err := h.formService.ListForms(adminID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("responses_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Ответы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[FormHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Форма", "Тип", "Вопрос", "Вариант", "Отметок"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[FormHandler] Ошибка записи заголовков: %v", err)
	}

	rowNum := 2
	for _, form := range forms {
		kind := "Викторина"
		if form.IsSurvey {
			kind = "Опрос"
		}
		for _, q := range form.Questions {
			for _, o := range q.Options {
				cell := fmt.Sprintf("A%d", rowNum)
				row := []interface{}{
					sanitizeForExcel(form.Name),
					kind,
					sanitizeForExcel(q.Text),
					sanitizeForExcel(o.Text),
					o.MarkedCount,
				}
				if err := sw.SetRow(cell, row); err != nil {
					log.Printf("[FormHandler] Ошибка записи строки %d: %v", rowNum, err)
				}
				rowNum++
			}
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[FormHandler] Ошибка при Flush: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[FormHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
