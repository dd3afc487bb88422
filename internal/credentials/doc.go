// Package credentials persists the team's exchange credentials so later runs can
// skip registration.
//
// Backends:
//   - FileStore: indented JSON file, team-credentials.json by default
//   - PostgresStore: single row in team_credentials
//   - RedisStore: JSON document under one key
//
// Every backend shares the same contract. Load never fails: a missing, empty,
// corrupt or incomplete record, or a cancelled context, reads as absent and the
// caller re-registers. Save overwrites the record, reports write failures as
// failure.CodePersistenceFailed and cancellation as failure.CodeCancelled.
package credentials
