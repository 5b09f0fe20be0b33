package models

import (
	"sort"
)

type TransactionType string

const (
	TransactionTypeBuy    TransactionType = "buy"
	TransactionTypeGift   TransactionType = "gift"
	TransactionTypeRedeem TransactionType = "redeem"
)

// TimestampLayout is the stored layout of transaction timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Defaults applied to absent source values.
const (
	DefaultPointsBought = 0.0
	DefaultRevenueUSD   = 0.0
	DefaultType         = TransactionType("")
	DefaultTimestamp    = "1990-01-01 00:00:00"
)

// Source column names of the transaction history.
const (
	ColumnMemberID     = "memberId"
	ColumnTimestamp    = "lastTransatcionUtcTs"
	ColumnType         = "lastTransactionType"
	ColumnPointsBought = "lastTransactionPointsBought"
	ColumnRevenueUSD   = "lastTransactionRevenueUSD"
)

type Transaction struct {
	MemberID     string          `db:"member_id"`
	PointsBought float64         `db:"points_bought"`
	RevenueUSD   float64         `db:"revenue_usd"`
	Type         TransactionType `db:"transaction_type"`
	Timestamp    string          `db:"transaction_ts"`
}

// RawTransaction is a row as read from a source, before defaults are applied.
type RawTransaction struct {
	MemberID     string
	PointsBought *float64
	RevenueUSD   *float64
	Type         *string
	Timestamp    *string
}

// Normalize backfills absent values with the package defaults.
func (r RawTransaction) Normalize() Transaction {
	tx := Transaction{
		MemberID:     r.MemberID,
		PointsBought: DefaultPointsBought,
		RevenueUSD:   DefaultRevenueUSD,
		Type:         DefaultType,
		Timestamp:    DefaultTimestamp,
	}
	if r.PointsBought != nil {
		tx.PointsBought = *r.PointsBought
	}
	if r.RevenueUSD != nil {
		tx.RevenueUSD = *r.RevenueUSD
	}
	if r.Type != nil {
		tx.Type = TransactionType(*r.Type)
	}
	if r.Timestamp != nil {
		tx.Timestamp = *r.Timestamp
	}
	return tx
}

// TransactionTable is an immutable set of transactions indexed by member.
type TransactionTable struct {
	rows     []Transaction
	byMember map[string][]int
}

func NewTransactionTable(rows []Transaction) *TransactionTable {
	t := &TransactionTable{
		rows:     make([]Transaction, len(rows)),
		byMember: make(map[string][]int),
	}
	copy(t.rows, rows)
	for i, row := range t.rows {
		t.byMember[row.MemberID] = append(t.byMember[row.MemberID], i)
	}
	return t
}

// Len returns the number of rows in the table.
func (t *TransactionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// MemberCount returns the number of distinct members.
func (t *TransactionTable) MemberCount() int {
	if t == nil {
		return 0
	}
	return len(t.byMember)
}

// Has reports whether the member owns at least one transaction.
func (t *TransactionTable) Has(memberID string) bool {
	if t == nil {
		return false
	}
	return len(t.byMember[memberID]) > 0
}

// Member returns a copy of the member's rows in load order.
func (t *TransactionTable) Member(memberID string) []Transaction {
	if t == nil {
		return nil
	}
	idx := t.byMember[memberID]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Transaction, len(idx))
	for i, rowIdx := range idx {
		out[i] = t.rows[rowIdx]
	}
	return out
}

// Rows returns a copy of all rows in load order.
func (t *TransactionTable) Rows() []Transaction {
	if t == nil {
		return nil
	}
	out := make([]Transaction, len(t.rows))
	copy(out, t.rows)
	return out
}

// SortByTimestampDesc orders transactions newest first. Ties keep load order.
func SortByTimestampDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp > txs[j].Timestamp
	})
}
