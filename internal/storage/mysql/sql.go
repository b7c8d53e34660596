package mysql

const createSnapshotsSQL = `
CREATE TABLE IF NOT EXISTS hotel_snapshots (
  name       VARCHAR(191) NOT NULL PRIMARY KEY,
  version    INT          NOT NULL,
  body       LONGTEXT     NOT NULL,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)
`

// The whole document is replaced in one statement.
const upsertSnapshotSQL = `
INSERT INTO hotel_snapshots (name, version, body)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  version    = VALUES(version),
  body       = VALUES(body),
  updated_at = CURRENT_TIMESTAMP
`

const getSnapshotSQL = `
SELECT version, body
FROM hotel_snapshots
WHERE name = ?
`
