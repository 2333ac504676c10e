package database

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
)

// DefaultCurrency is the native unit of the chain. A transaction that does
// not declare a currency carries this one.
const DefaultCurrency = "SOCIORA"

// defaultGasLimit is the gas ceiling applied to a transaction that does
// not declare one.
const defaultGasLimit = 21_000

// =============================================================================

// TxType represents the closed set of on-chain operations.
type TxType string

// Set of valid transaction types.
const (
	TxTypeVideoUpload    TxType = "VIDEO_UPLOAD"    // Creator uploads video.
	TxTypeInvestment     TxType = "INVESTMENT"      // Investor stakes in video.
	TxTypeDistribution   TxType = "DISTRIBUTION"    // Reward distribution to beneficiaries.
	TxTypeStorageProof   TxType = "STORAGE_PROOF"   // Miner proves storage/transcoding.
	TxTypeInterestPayout TxType = "INTEREST_PAYOUT" // Interest paid to investor.
	TxTypeWithdrawal     TxType = "WITHDRAWAL"      // User withdraws funds.
	TxTypePlatformFee    TxType = "PLATFORM_FEE"    // Platform collects fees.
)

// ToTxType converts a string tag into a TxType, rejecting anything outside
// the closed enumeration.
func ToTxType(s string) (TxType, error) {
	switch TxType(s) {
	case TxTypeVideoUpload, TxTypeInvestment, TxTypeDistribution, TxTypeStorageProof,
		TxTypeInterestPayout, TxTypeWithdrawal, TxTypePlatformFee:
		return TxType(s), nil
	}

	return "", fmt.Errorf("unknown transaction type %q", s)
}

// =============================================================================

// TxStatus represents the lifecycle state of a transaction.
type TxStatus string

// Set of valid transaction statuses.
const (
	TxStatusPending   TxStatus = "PENDING"   // In mempool, not yet confirmed.
	TxStatusConfirmed TxStatus = "CONFIRMED" // Included in a block.
	TxStatusFinalized TxStatus = "FINALIZED" // Irreversible after the confirmation depth.
	TxStatusFailed    TxStatus = "FAILED"    // Rejected or reverted.
)

// ToTxStatus converts a string tag into a TxStatus, rejecting anything
// outside the closed enumeration.
func ToTxStatus(s string) (TxStatus, error) {
	switch TxStatus(s) {
	case TxStatusPending, TxStatusConfirmed, TxStatusFinalized, TxStatusFailed:
		return TxStatus(s), nil
	}

	return "", fmt.Errorf("unknown transaction status %q", s)
}

// =============================================================================

// TxInfo carries the caller supplied fields for constructing a transaction.
// Identity fields must already be one-way hashes: no raw key or personally
// identifying string is ever stored on chain.
type TxInfo struct {
	TxType                TxType
	SenderPublicKeyHash   string
	ReceiverPublicKeyHash string
	CreatorID             string
	Amount                float64
	Currency              string
	VideoHash             string
	VideoLength           int
	VideoSize             int64
	StorageProof          string
	StorageProofSignature string
	Nonce                 uint
	GasPrice              float64
	GasLimit              uint
	Metadata              map[string]any
}

// Tx is the record of one on-chain operation. Lifecycle fields (Status,
// BlockHash, BlockNumber) are not part of the transaction identity: the
// hash is computed over everything else and mutating them never changes it.
type Tx struct {
	TxID      string `json:"tx_id"`
	Timestamp string `json:"timestamp"`
	TxType    TxType `json:"tx_type"`

	SenderPublicKeyHash   string `json:"sender_public_key_hash"`
	ReceiverPublicKeyHash string `json:"receiver_public_key_hash"`
	CreatorID             string `json:"creator_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	VideoHash   string `json:"video_hash"`
	VideoLength int    `json:"video_length"`
	VideoSize   int64  `json:"video_size"`

	StorageProof          string `json:"storage_proof,omitempty"`
	StorageProofSignature string `json:"storage_proof_signature,omitempty"`

	Nonce    uint    `json:"nonce"`
	GasPrice float64 `json:"gas_price"`
	GasLimit uint    `json:"gas_limit"`
	GasUnits uint    `json:"gas_units"`

	Status      TxStatus `json:"status"`
	BlockHash   string   `json:"block_hash,omitempty"`
	BlockNumber uint64   `json:"block_number,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`

	txHash string
}

// NewTx constructs a new transaction in the PENDING state with a unique id
// and the current timestamp.
func NewTx(info TxInfo) (Tx, error) {
	if _, err := ToTxType(string(info.TxType)); err != nil {
		return Tx{}, err
	}

	if info.Amount < 0 {
		return Tx{}, fmt.Errorf("amount must not be negative, got %g", info.Amount)
	}

	if info.GasPrice < 0 {
		return Tx{}, fmt.Errorf("gas price must not be negative, got %g", info.GasPrice)
	}

	if info.VideoLength < 0 || info.VideoSize < 0 {
		return Tx{}, fmt.Errorf("video metadata must not be negative")
	}

	currency := info.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	gasLimit := info.GasLimit
	if gasLimit == 0 {
		gasLimit = defaultGasLimit
	}

	tx := Tx{
		TxID:                  uuid.NewString(),
		Timestamp:             signature.Now(),
		TxType:                info.TxType,
		SenderPublicKeyHash:   info.SenderPublicKeyHash,
		ReceiverPublicKeyHash: info.ReceiverPublicKeyHash,
		CreatorID:             info.CreatorID,
		Amount:                info.Amount,
		Currency:              currency,
		VideoHash:             info.VideoHash,
		VideoLength:           info.VideoLength,
		VideoSize:             info.VideoSize,
		StorageProof:          info.StorageProof,
		StorageProofSignature: info.StorageProofSignature,
		Nonce:                 info.Nonce,
		GasPrice:              info.GasPrice,
		GasLimit:              gasLimit,
		Status:                TxStatusPending,
		Metadata:              info.Metadata,
	}

	return tx, nil
}

// =============================================================================

// TxHash returns the content hash of the transaction, computing and caching
// it on first access.
func (tx *Tx) TxHash() string {
	if tx.txHash == "" {
		tx.txHash = ComputeTxHash(*tx)
	}

	return tx.txHash
}

// ComputeTxHash computes the content hash of the transaction over every
// field except the lifecycle fields and the hash itself.
func ComputeTxHash(tx Tx) string {
	data, err := json.Marshal(tx)
	if err != nil {
		return signature.ZeroHash
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return signature.ZeroHash
	}

	// Lifecycle fields can change after creation and must never affect
	// identity. Gas units are fixed at block inclusion time and fall in
	// the same bucket; the fee they produce is committed through the
	// block reward instead.
	delete(fields, "status")
	delete(fields, "block_hash")
	delete(fields, "block_number")
	delete(fields, "gas_units")

	return signature.Hash(fields)
}

// Hash implements the merkle Hashable interface for providing a hash of
// the transaction.
func (tx Tx) Hash() ([]byte, error) {
	return hexutil.Decode(ComputeTxHash(tx))
}

// Equals implements the merkle Hashable interface for providing an
// equality check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.TxID == otherTx.TxID && ComputeTxHash(tx) == ComputeTxHash(otherTx)
}

// =============================================================================

// Confirm records the transaction's inclusion in a block. Only a PENDING
// transaction can be confirmed.
func (tx *Tx) Confirm(blockHash string, blockNumber uint64) error {
	if tx.Status != TxStatusPending {
		return fmt.Errorf("cannot confirm transaction in status %s", tx.Status)
	}

	tx.Status = TxStatusConfirmed
	tx.BlockHash = blockHash
	tx.BlockNumber = blockNumber

	return nil
}

// Finalize marks a confirmed transaction irreversible. The confirmation
// depth policy belongs to the caller.
func (tx *Tx) Finalize() error {
	if tx.Status != TxStatusConfirmed {
		return fmt.Errorf("cannot finalize transaction in status %s", tx.Status)
	}

	tx.Status = TxStatusFinalized

	return nil
}

// Fail marks the transaction rejected. A finalized transaction is
// irreversible and cannot fail.
func (tx *Tx) Fail() error {
	if tx.Status == TxStatusFinalized {
		return fmt.Errorf("cannot fail a finalized transaction")
	}

	tx.Status = TxStatusFailed

	return nil
}

// =============================================================================

// VerifySignature verifies the signature was produced over this
// transaction's hash by the holder of the specified key, and that the key
// matches the sender's on-chain key hash.
func (tx *Tx) VerifySignature(publicKey string, sig string) bool {
	if signature.HashPublicKey(publicKey) != tx.SenderPublicKeyHash {
		return false
	}

	return signature.VerifySignature(tx.TxHash(), sig, publicKey)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:%g%s", tx.TxID, tx.TxType, tx.Amount, tx.Currency)
}

// =============================================================================

// TxData is the serialized form of a transaction. The embedded hash is
// advisory: reconstruction recomputes it and rejects a mismatch.
type TxData struct {
	Tx
	DeclaredHash string `json:"tx_hash"`
}

// NewTxData constructs the serializable form of the transaction.
func NewTxData(tx Tx) TxData {
	return TxData{
		Tx:           tx,
		DeclaredHash: ComputeTxHash(tx),
	}
}

// ToTx converts the serialized form back into a transaction, validating
// the closed tag sets and verifying the declared hash. The hash excludes
// the lifecycle fields and the gas units, so this check does not cover
// them: gas-unit integrity is enforced at block scope through the reward
// commitment inside the block hash.
func ToTx(data TxData) (Tx, error) {
	if _, err := ToTxType(string(data.TxType)); err != nil {
		return Tx{}, err
	}

	if _, err := ToTxStatus(string(data.Status)); err != nil {
		return Tx{}, err
	}

	tx := data.Tx
	tx.txHash = ""

	if data.DeclaredHash != "" && data.DeclaredHash != ComputeTxHash(tx) {
		return Tx{}, fmt.Errorf("transaction hash mismatch, declared %s", data.DeclaredHash)
	}

	return tx, nil
}
