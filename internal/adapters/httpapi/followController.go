package httpapi

import (
	"errors"
	"yatube/internal/common"

	"github.com/gin-gonic/gin"
)

type FollowController struct{ fc FollowUseCase }

func NewFollowController(fc FollowUseCase) *FollowController {
	return &FollowController{fc: fc}
}

// Follow subscribes the current user to the author and goes back to the feed.
// Following oneself is silently ignored.
func (ctl *FollowController) Follow(c *gin.Context) {
	err := ctl.fc.FollowUser(c.Request.Context(), currentUserID(c), c.Param("username"))
	if err != nil && !errors.Is(err, common.ErrSelfFollow) {
		respondError(c, err)
		return
	}
	redirect(c, "/")
}

func (ctl *FollowController) Unfollow(c *gin.Context) {
	if err := ctl.fc.UnfollowUser(c.Request.Context(), currentUserID(c), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	redirect(c, "/")
}
