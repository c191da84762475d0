package controller

import (
	"net/http"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/service"
	"gig-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(secured *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}
	secured.POST("/bids", h.PostBid)
	secured.GET("/bids/my", h.GetUserBids)
	secured.GET("/bids/:gigId/list", h.GetGigBids)

	secured.POST("/bids/:bidId/hire", h.HireBid)
	secured.DELETE("/bids/:bidId", h.WithdrawBid)

	return h
}

type postBidInput struct {
	GigId    string  `json:"gigId" validate:"required,uuid"`
	Message  string  `json:"message" validate:"required,min=10,max=2000"`
	BidPrice float64 `json:"bidPrice" validate:"required,gt=0"`
}

// /bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	model := &entity.CreateBidInput{
		GigId: input.GigId, FreelancerId: callerId(c),
		Message: input.Message, BidPrice: input.BidPrice,
	}

	bid, err := h.bidService.SubmitBid(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	case service.ErrUserNotFound:
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no user with given id"}); e != nil {
			return e
		}
	case service.ErrOwnGigBid:
		if e := c.JSON(http.StatusForbidden, errorResponse{"You can't bid on your own gig"}); e != nil {
			return e
		}
	case service.ErrGigNotOpen:
		if e := c.JSON(http.StatusConflict, errorResponse{"Gig is no longer open for bids"}); e != nil {
			return e
		}
	case service.ErrDuplicateBid:
		if e := c.JSON(http.StatusConflict, errorResponse{"You have already placed a bid on this gig"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("submit bid failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getUserBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newGetUserBidsInput() getUserBidsInput {
	return getUserBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids/my
func (h *bidRoutesHandler) GetUserBids(c echo.Context) error {
	var input = newGetUserBidsInput()
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
	bids, err := h.bidService.GetUserBids(c.Request().Context(), callerId(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	logger.Error().Err(err).Msg("list own bids failed")
	if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
		return e
	}

	return err
}

type getGigBidsInput struct {
	GigId string `param:"gigId" validate:"required,uuid"`
}

// /bids/:gigId/list
func (h *bidRoutesHandler) GetGigBids(c echo.Context) error {
	input := getGigBidsInput{GigId: c.Param("gigId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	bids, err := h.bidService.GetBidsForGig(c.Request().Context(), input.GigId, callerId(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	case service.ErrNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the gig owner can see its bids"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("list gig bids failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type hireBidInput struct {
	BidId string `param:"bidId" validate:"required,uuid"`
}

// /bids/:bidId/hire
func (h *bidRoutesHandler) HireBid(c echo.Context) error {
	input := hireBidInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	result, err := h.bidService.Hire(c.Request().Context(), input.BidId, callerId(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no more gig for bid"}); e != nil {
			return e
		}
	case service.ErrNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the gig owner can hire a freelancer"}); e != nil {
			return e
		}
	case service.ErrGigNotOpen:
		if e := c.JSON(http.StatusConflict, errorResponse{"Gig is already assigned"}); e != nil {
			return e
		}
	case service.ErrBidAlreadyProcessed:
		if e := c.JSON(http.StatusConflict, errorResponse{"Bid is no longer pending"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("hire failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type withdrawBidInput struct {
	BidId string `param:"bidId" validate:"required,uuid"`
}

// /bids/:bidId
func (h *bidRoutesHandler) WithdrawBid(c echo.Context) error {
	input := withdrawBidInput{BidId: c.Param("bidId")}
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	err := h.bidService.WithdrawBid(c.Request().Context(), input.BidId, callerId(c))
	if err == nil {
		return c.NoContent(http.StatusNoContent)
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrNotBidOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the bid author can withdraw it"}); e != nil {
			return e
		}
	case service.ErrBidAlreadyProcessed:
		if e := c.JSON(http.StatusConflict, errorResponse{"Bid is no longer pending"}); e != nil {
			return e
		}
	default:
		logger.Error().Err(err).Msg("withdraw bid failed")
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
