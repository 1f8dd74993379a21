package mysql

import (
	"database/sql"
	"fmt"

	"github.com/quillhub/quillhub-be/config"
	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLDB struct {
	*GroupDB
	*PostDB
	*FollowDB
	*UserDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBName))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		GroupDB:  getGroupDB(sess),
		PostDB:   getPostDB(sess),
		FollowDB: getFollowDB(sess),
		UserDB:   getUserDB(sess),
		sess:     sess,
		sqlDB:    sqlDB,
	}, nil
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
