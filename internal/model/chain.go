package model

// Block is a single block as served by the ledger's read-only chain endpoints.
type Block struct {
	Timestamp  float64            `json:"timestamp"`
	LastHash   string             `json:"last_hash"`
	Hash       string             `json:"hash"`
	Data       []ChainTransaction `json:"data"`
	Difficulty int                `json:"difficulty"`
	Nonce      uint64             `json:"nonce"`
	Height     int                `json:"height"`
	Version    int                `json:"version"`
	MerkleRoot string             `json:"merkle_root"`
	TxCount    int                `json:"tx_count"`
}

// ChainTransaction is a ledger transaction as it appears in blocks, the
// mempool, and per-address history.
type ChainTransaction struct {
	ID          string             `json:"id"`
	Input       map[string]any     `json:"input"`
	Output      map[string]float64 `json:"output"`
	Fee         float64            `json:"fee"`
	Size        int                `json:"size,omitempty"`
	IsCoinbase  bool               `json:"is_coinbase,omitempty"`
	Status      string             `json:"status,omitempty"` // pending or confirmed
	BlockHeight int                `json:"blockHeight,omitempty"`
	Timestamp   float64            `json:"timestamp,omitempty"`
}

// BlockchainResponse is the full chain dump from GET /blockchain.
type BlockchainResponse struct {
	Chain         []Block                       `json:"chain"`
	UTXOSet       map[string]map[string]float64 `json:"utxo_set"`
	CurrentHeight int                           `json:"current_height"`
}

// BlockchainRangeResponse is the answer to GET /blockchain/range.
type BlockchainRangeResponse struct {
	Chain []Block `json:"chain"`
}

// BlockchainHeightResponse is the answer to GET /blockchain/height.
type BlockchainHeightResponse struct {
	Height int `json:"height"`
}

// PaginatedBlocksResponse is the answer to GET /blockchain/paginated.
type PaginatedBlocksResponse struct {
	Blocks      []Block `json:"blocks"`
	Page        int     `json:"page"`
	PageSize    int     `json:"page_size"`
	TotalBlocks int     `json:"total_blocks"`
	TotalPages  int     `json:"total_pages"`
	HasNext     bool    `json:"has_next"`
	HasPrevious bool    `json:"has_previous"`
}
