// package credentials stores usernames and passwords in a flat file and checks logins against it.
//
// The file holds one "username":"password" pair per line. Every call re-reads the file, so edits made by another
// process between calls are observed. How the password column is encoded is decided by a [Hasher].
package credentials
