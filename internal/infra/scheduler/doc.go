// Package scheduler registers trigger scripts with the host's task scheduler:
// schtasks on Windows, the user crontab elsewhere. Both registrars overwrite
// an existing task of the same name.
package scheduler
