package types

import "postboard-server/db"

type ServerAuth struct {
	User *db.User
}
