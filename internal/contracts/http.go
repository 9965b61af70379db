package contracts

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type MetricsResponse struct {
	FollowerQuality int64   `json:"followerQuality"`
	EngagementRate  float64 `json:"engagementRate"`
	AvgReactions    int64   `json:"avgReactions"`
	ViralReach      int64   `json:"viralReach"`
	AvgRecasts      int64   `json:"avgRecasts"`
	ActivityLevel   string  `json:"activityLevel"`
	AccountAgeDays  int64   `json:"accountAgeDays"`
	TotalCasts      int     `json:"totalCasts"`
}

type UserResponse struct {
	FID               int64           `json:"fid"`
	Username          string          `json:"username"`
	DisplayName       string          `json:"displayName"`
	PfpURL            string          `json:"pfpUrl"`
	Bio               string          `json:"bio"`
	FollowerCount     int64           `json:"followerCount"`
	FollowingCount    int64           `json:"followingCount"`
	VerifiedAddresses []string        `json:"verifiedAddresses"`
	CustodyAddress    string          `json:"custodyAddress"`
	PowerBadge        bool            `json:"powerBadge"`
	NeynarScore       *float64        `json:"neynarScore,omitempty"`
	Metrics           MetricsResponse `json:"metrics"`
}

type ChainTransactionsResponse struct {
	Ethereum uint64 `json:"ethereum"`
	Base     uint64 `json:"base"`
	Optimism uint64 `json:"optimism"`
	Arbitrum uint64 `json:"arbitrum"`
}

type OnchainResponse struct {
	Address      string                    `json:"address"`
	Transactions ChainTransactionsResponse `json:"transactions"`
	Total        uint64                    `json:"total"`
}
