package engine

// RequestState tracks a pending request's lifecycle.
type RequestState int

const (
	// Pending means no terminal notification has fired yet.
	Pending RequestState = iota
	// Succeeded means the success notification has fired; Result is readable.
	Succeeded
	// Failed means the error notification has fired; Err is readable.
	Failed
)

// String returns the lowercase state name.
func (s RequestState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Request is a native handle tracking one in-flight operation.
//
// A request transitions Pending → Succeeded or Pending → Failed via
// exactly one terminal notification on its emitter; the two terminals
// are mutually exclusive. Result and Err are readable once the
// corresponding notification has fired. A cursor request is the one
// exception to single-firing: Continue on its cursor re-arms the
// request, which then fires success (or error) again.
type Request interface {
	Source

	// Token identifies the request for tracing and logs.
	Token() string
	// State returns the request's current lifecycle state.
	State() RequestState
	// Result returns the operation's value once Succeeded.
	Result() any
	// Err returns the operation's error once Failed.
	Err() error
}

// TransactionMode restricts what a transaction's stores may do.
type TransactionMode string

const (
	ReadOnly  TransactionMode = "readonly"
	ReadWrite TransactionMode = "readwrite"
)

// StoreOptions configures object store creation.
type StoreOptions struct {
	// KeyPath names the record field holding the primary key. Empty
	// means keys are supplied out of line on Put/Add.
	KeyPath string
	// AutoIncrement makes the store generate int64 keys when none is
	// supplied.
	AutoIncrement bool
}

// IndexOptions configures index creation.
type IndexOptions struct {
	// Unique rejects writes that would duplicate an index key.
	Unique bool
}

// UpgradeInfo is the value carried by an open request's upgradeneeded
// notification: the half-open database plus the version transition in
// progress.
type UpgradeInfo struct {
	Database   Database
	OldVersion uint64
	NewVersion uint64
}

// Engine is a storage engine's connection surface.
type Engine interface {
	// Open starts opening the named database at the requested version.
	// The returned request fires upgradeneeded (carrying UpgradeInfo)
	// when the stored version is below the requested one, blocked when
	// another live connection prevents the version change, and then
	// exactly one of success (Result is a Database) or error.
	Open(name string, version uint64) Request

	// DeleteDatabase removes the named database. The request fires
	// success with a nil result, or error.
	DeleteDatabase(name string) Request
}

// Database is an open connection to one named database.
type Database interface {
	Source

	Name() string
	Version() uint64
	// ObjectStoreNames lists the store names in engine order. The
	// bridging layer re-sorts into canonical collation order.
	ObjectStoreNames() []string
	// Transaction opens a transaction over the named stores.
	Transaction(storeNames []string, mode TransactionMode) (Transaction, error)
	// CreateObjectStore is only valid while an upgrade is in progress.
	CreateObjectStore(name string, opts StoreOptions) (ObjectStore, error)
	// DeleteObjectStore is only valid while an upgrade is in progress.
	DeleteObjectStore(name string) error
	// Close releases the connection. Idempotent.
	Close()
}

// Transaction scopes a group of store operations to one mode.
type Transaction interface {
	Source

	Mode() TransactionMode
	ObjectStoreNames() []string
	ObjectStore(name string) (ObjectStore, error)
	// Abort cancels the transaction. Operations issued afterwards fail.
	Abort() error
}

// ObjectStore holds records addressed by primary key.
//
// Every asynchronous operation returns a Request that fires success or
// error exactly once. Query arguments accept a Key or a *KeyRange; nil
// means the whole store.
type ObjectStore interface {
	Source

	Name() string
	KeyPath() string
	AutoIncrement() bool
	IndexNames() []string

	Get(query any) Request
	GetKey(query any) Request
	GetAll(query any) Request
	GetAllKeys(query any) Request
	Count(query any) Request
	Put(value any, key Key) Request
	Add(value any, key Key) Request
	Delete(query any) Request
	Clear() Request
	OpenCursor(query any) Request
	OpenKeyCursor(query any) Request

	Index(name string) (Index, error)
	// CreateIndex is only valid while an upgrade is in progress.
	CreateIndex(name, keyPath string, opts IndexOptions) (Index, error)
}

// Index is a secondary ordering over one object store.
type Index interface {
	Source

	Name() string
	KeyPath() string
	Unique() bool

	Get(query any) Request
	GetKey(query any) Request
	GetAll(query any) Request
	GetAllKeys(query any) Request
	Count(query any) Request
	OpenCursor(query any) Request
	OpenKeyCursor(query any) Request
}

// Cursor walks an ordered position within a store or index. It is the
// value a cursor request resolves with; the request resolves with nil
// once the range is exhausted.
type Cursor interface {
	// Key is the position's key (the index key when walking an index).
	Key() Key
	// PrimaryKey is the underlying record's primary key.
	PrimaryKey() Key
	// Value is the record at the position; nil for key-only cursors.
	Value() any
	// Continue re-arms the cursor's request to fire success again at
	// the next position, or with a nil result at the end.
	Continue()
	// Delete removes the record at the position.
	Delete() Request
	// Update replaces the record at the position, keeping its key.
	Update(value any) Request
}
