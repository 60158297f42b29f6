package db

const (
	createCircuits = `CREATE TABLE IF NOT EXISTS circuits (
    circuit_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    language TEXT NOT NULL,
    qubit_count INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    document TEXT NOT NULL
);`

	createOwnerIndex = `CREATE INDEX IF NOT EXISTS idx_circuits_owner ON circuits (owner_id);`

	upsertCircuit = `INSERT INTO circuits (circuit_id, name, owner_id, language, qubit_count, created_at, document)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(circuit_id) DO UPDATE SET
    name = excluded.name,
    owner_id = excluded.owner_id,
    language = excluded.language,
    qubit_count = excluded.qubit_count,
    created_at = excluded.created_at,
    document = excluded.document;`

	selectCircuit = `SELECT document FROM circuits WHERE circuit_id = ?;`

	selectAllCircuits = `SELECT document FROM circuits;`

	selectOwnerCircuits = `SELECT document FROM circuits WHERE owner_id = ?;`

	deleteCircuit = `DELETE FROM circuits WHERE circuit_id = ?;`
)

var schemaSQL = createCircuits + "\n" + createOwnerIndex
