package kvstore

import "time"

const adviceKVTable = "advice_kv_entries"

type kvEntryTableModel struct {
	Key       string    `db:"cache_key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type kvEntryUpsertModel struct {
	Key   string `db:"cache_key"`
	Value []byte `db:"value"`
}
