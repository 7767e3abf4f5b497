package request

type StartPauseRequest struct {
	Reason string `form:"reason" json:"reason"`
	Note   string `form:"note" json:"note"`
}
