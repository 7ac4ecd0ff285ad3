package http

type createReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type commentReq struct {
	Text string `json:"text"`
}

type startReq struct {
	FreelancerID int64 `json:"freelancer_id"`
}
