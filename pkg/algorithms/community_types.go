package algorithms

// Community represents a detected community
type Community struct {
	ID    int
	Nodes []int // node indices, ascending
	Size  int
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64     // Quality measure of the partitioning
	NodeCommunity map[int]int // Node index -> Community ID
}
