package rest

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sitehatch/market-backend/internal/application"
	"github.com/sitehatch/market-backend/internal/application/commands/order"
	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/interfaces"
	"github.com/sitehatch/market-backend/internal/domain/category"
)

type Server struct {
	handlers *application.Handlers
	files    interfaces.FileReader
}

func NewServer(handlers *application.Handlers, files interfaces.FileReader) *Server {
	return &Server{handlers: handlers, files: files}
}

func (s *Server) ListTemplates(c *fiber.Ctx) error {
	templates, err := s.handlers.ListTemplates.Query(c.Context(), c.Query("category"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(templates)
}

func (s *Server) GetQuote(c *fiber.Ctx) error {
	templateID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid template id"})
	}
	months := c.QueryInt("duration")
	pages := c.QueryInt("pages")
	seq, _ := strconv.ParseUint(c.Query("seq", "0"), 10, 64)

	quote, err := s.handlers.GetQuote.Query(c.Context(), templateID, c.Query("country"), months, pages, seq)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(quote)
}

func (s *Server) ListCategoryFields(c *fiber.Ctx) error {
	cat := category.Category(c.Params("category"))
	fields, ok := category.Fields(cat)
	if !ok {
		valid := make([]string, 0, len(category.All()))
		for _, v := range category.All() {
			valid = append(valid, string(v))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error:           "invalid category",
			ValidCategories: valid,
		})
	}

	views := make([]dto.CategoryFieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, dto.CategoryFieldView{
			Key:         f.Key,
			Label:       f.Label,
			InputKind:   string(f.InputKind),
			Placeholder: f.Placeholder,
			HelpText:    f.HelpText,
			Required:    f.Required,
		})
	}

	return c.Status(fiber.StatusOK).JSON(views)
}

func (s *Server) SubmitOrder(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	req, closers, err := mapSubmitRequest(form)
	defer func() {
		for _, closeFile := range closers {
			_ = closeFile()
		}
	}()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	orderID, err := s.handlers.SubmitOrder.Execute(c.Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitOrderResponse{OrderID: orderID.String()})
}

func (s *Server) ListOrders(c *fiber.Ctx) error {
	orders, err := s.handlers.GetOrders.List(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(orders)
}

func (s *Server) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid order id"})
	}

	view, err := s.handlers.GetOrders.Get(c.Context(), id.String())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (s *Server) DeleteOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid order id"})
	}

	if err := s.handlers.DeleteOrder.Execute(c.Context(), id.String()); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadFile streams an uploaded order attachment back to the admin by its
// storage key.
func (s *Server) DownloadFile(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "file key is required"})
	}

	data, err := s.files.GetFile(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "file not found"})
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}

func (s *Server) CreateTemplate(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	templateID, err := s.handlers.CreateTemplate.Execute(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateTemplateResponse{TemplateID: templateID})
}

func (s *Server) UpdateTemplate(c *fiber.Ctx) error {
	templateID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid template id"})
	}
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	if err := s.handlers.UpdateTemplate.Execute(c.Context(), templateID, &req); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) DeleteTemplate(c *fiber.Ctx) error {
	templateID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid template id"})
	}

	if err := s.handlers.DeleteTemplate.Execute(c.Context(), templateID); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ListKnowledge(c *fiber.Ctx) error {
	entries, err := s.handlers.Knowledge.List(c.Context(), c.Query("topic"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

func (s *Server) CreateKnowledge(c *fiber.Ctx) error {
	var req dto.CreateKnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	id, err := s.handlers.Knowledge.Create(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (s *Server) DeleteKnowledge(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid id"})
	}

	if err := s.handlers.Knowledge.Delete(c.Context(), id); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) PostMessage(c *fiber.Ctx) error {
	var req dto.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	view, err := s.handlers.PostMessage.Execute(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

func (s *Server) ListMessages(c *fiber.Ctx) error {
	messages, err := s.handlers.GetMessages.Query(c.Context(), c.Params("session"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(messages)
}

func (s *Server) Assist(c *fiber.Ctx) error {
	var req dto.AssistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.Assist.Execute(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	clientSecret, err := s.handlers.Checkout.Execute(c.Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.CheckoutResponse{ClientSecret: clientSecret})
}

// mapSubmitRequest flattens the multipart form into the submission request.
// Returned closers must run after the command finishes with the readers.
func mapSubmitRequest(form *multipart.Form) (*order.SubmitOrderRequest, []func() error, error) {
	value := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return strings.TrimSpace(vs[0])
		}
		return ""
	}
	intValue := func(key string) int {
		n, err := strconv.Atoi(value(key))
		if err != nil {
			return 0
		}
		return n
	}

	templateID, _ := strconv.ParseUint(value("template_id"), 10, 64)

	flat := make(map[string]string, len(form.Value))
	for key, vs := range form.Value {
		if len(vs) > 0 {
			flat[key] = strings.TrimSpace(vs[0])
		}
	}

	var handles []string
	for _, h := range form.Value["social_handles"] {
		if h = strings.TrimSpace(h); h != "" {
			handles = append(handles, h)
		}
	}

	req := &order.SubmitOrderRequest{
		Name:            value("name"),
		Email:           value("email"),
		Phone:           value("phone"),
		Category:        value("category"),
		TemplateID:      templateID,
		Country:         value("country"),
		DurationMonths:  intValue("duration_months"),
		PageCount:       intValue("page_count"),
		ExtraPages:      value("extra_pages"),
		DomainChoice:    value("domain_choice"),
		DomainName:      value("domain_name"),
		ThemeChoice:     value("theme_choice"),
		CustomColor:     value("custom_color"),
		SocialHandles:   handles,
		Message:         value("message"),
		Form:            flat,
		SubmissionToken: value("submission_token"),
	}

	var closers []func() error
	addFiles := func(role consts.FileRole, headers []*multipart.FileHeader) error {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				return err
			}
			closers = append(closers, f.Close)
			req.Files = append(req.Files, order.PendingFile{
				Role:        role,
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     f,
			})
		}
		return nil
	}

	if err := addFiles(consts.FileRoleLogo, form.File["logo"]); err != nil {
		return nil, closers, err
	}
	if err := addFiles(consts.FileRoleMedia, form.File["media"]); err != nil {
		return nil, closers, err
	}
	if err := addFiles(consts.FileRoleOther, form.File["other"]); err != nil {
		return nil, closers, err
	}

	return req, closers, nil
}

func errorResponse(c *fiber.Ctx, err error) error {
	var catErr order.InvalidCategoryError
	if errors.As(err, &catErr) {
		valid := make([]string, 0, len(catErr.Valid))
		for _, v := range catErr.Valid {
			valid = append(valid, string(v))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error:           catErr.Error(),
			ValidCategories: valid,
		})
	}

	var validationErr errs.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	var lookupErr errs.LookupError
	if errors.As(err, &lookupErr) || errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
}
