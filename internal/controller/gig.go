package controller

import (
	"net/http"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/service"
	"gig-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type gigRoutesHandler struct {
	gigService service.Gig
	validate   *validator.Validate
}

func newGigRoutesHandler(public *echo.Group, secured *echo.Group, services *service.Services, v *validator.Validate) *gigRoutesHandler {
	h := &gigRoutesHandler{gigService: services.Gig, validate: v}
	public.GET("/gigs", h.GetGigs)
	public.GET("/gigs/:gigId", h.GetGig)

	secured.POST("/gigs", h.PostGig)
	secured.GET("/gigs/my", h.GetUserGigs)
	secured.PUT("/gigs/:gigId", h.PutGig)
	secured.DELETE("/gigs/:gigId", h.DeleteGig)

	return h
}

type postGigInput struct {
	Title       string  `json:"title" validate:"required,min=5,max=100"`
	Description string  `json:"description" validate:"required,min=20,max=5000"`
	Budget      float64 `json:"budget" validate:"required,gt=0"`
}

// /gigs
func (h *gigRoutesHandler) PostGig(c echo.Context) error {
	var input postGigInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateGigInput{
		Title: input.Title, Description: input.Description,
		Budget: input.Budget, OwnerId: callerId(c),
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, gig); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrUserNotFound:
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no user with given id"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("create gig failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getGigsInput struct {
	Search string `query:"search" validate:"max=100"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetGigsInput() getGigsInput {
	return getGigsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /gigs
func (h *gigRoutesHandler) GetGigs(c echo.Context) error {
	var input = newGetGigsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	gigs, err := h.gigService.GetOpenGigs(c.Request().Context(), input.Search, pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, gigs); e != nil {
			return e
		}

		return nil
	}

	logger.Error().Err(err).Msg("list gigs failed")
	if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
		return e
	}

	return err
}

type getGigInput struct {
	GigId string `param:"gigId" validate:"required,uuid"`
}

// /gigs/:gigId
func (h *gigRoutesHandler) GetGig(c echo.Context) error {
	input := getGigInput{GigId: c.Param("gigId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	gig, err := h.gigService.GetGigById(c.Request().Context(), input.GigId)
	if err == nil {
		if e := c.JSON(http.StatusOK, gig); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("get gig failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getUserGigsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newGetUserGigsInput() getUserGigsInput {
	return getUserGigsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /gigs/my
func (h *gigRoutesHandler) GetUserGigs(c echo.Context) error {
	var input = newGetUserGigsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	gigs, err := h.gigService.GetUserGigs(c.Request().Context(), callerId(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, gigs); e != nil {
			return e
		}

		return nil
	}

	logger.Error().Err(err).Msg("list own gigs failed")
	if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
		return e
	}

	return err
}

type putGigInput struct {
	GigId       string  `param:"gigId" validate:"required,uuid"`
	Title       string  `json:"title" validate:"omitempty,min=5,max=100"`
	Description string  `json:"description" validate:"omitempty,min=20,max=5000"`
	Budget      float64 `json:"budget" validate:"omitempty,gt=0"`
}

// /gigs/:gigId
func (h *gigRoutesHandler) PutGig(c echo.Context) error {
	var input putGigInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.GigId = c.Param("gigId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.UpdateGigInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
	}

	gig, err := h.gigService.UpdateGigById(c.Request().Context(), input.GigId, callerId(c), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, gig); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrNoNewChanges:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Gig updates required, set gig's title, description and/or budget"}); e != nil {
			return e
		}
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	case service.ErrNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the gig owner can edit it"}); e != nil {
			return e
		}
	case service.ErrGigNotOpen:
		if e := c.JSON(http.StatusConflict, errorResponse{"Gig is no longer open"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("update gig failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type deleteGigInput struct {
	GigId string `param:"gigId" validate:"required,uuid"`
}

// /gigs/:gigId
func (h *gigRoutesHandler) DeleteGig(c echo.Context) error {
	input := deleteGigInput{GigId: c.Param("gigId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	err := h.gigService.DeleteGigById(c.Request().Context(), input.GigId, callerId(c))
	if err == nil {
		return c.NoContent(http.StatusNoContent)
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	case service.ErrNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the gig owner can delete it"}); e != nil {
			return e
		}
	case service.ErrGigAssigned:
		if e := c.JSON(http.StatusConflict, errorResponse{"Gig is already assigned and can't be deleted"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("delete gig failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
