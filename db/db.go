package db

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/lib/pq"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asset-tools-backend/models"
)

// Pool - пул тенантских подключений.
// Каждая компания живёт в собственной БД <код>_<суффикс>,
// подключение открывается лениво и кэшируется на время жизни процесса.
type Pool struct {
	host       string
	port       string
	user       string
	pass       string
	nameSuffix string
	debugMode  bool
	migrate    bool

	mu    sync.RWMutex
	conns map[string]*gorm.DB
}

func NewPool(host, port, user, pass, nameSuffix string, debugMode, migrate bool) *Pool {
	return &Pool{
		host:       host,
		port:       port,
		user:       user,
		pass:       pass,
		nameSuffix: nameSuffix,
		debugMode:  debugMode,
		migrate:    migrate,
		conns:      map[string]*gorm.DB{},
	}
}

var companyCodeRe = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Resolve возвращает подключение к БД тенанта.
// Пустой или некорректный код - ошибка, общей БД по умолчанию нет.
func (p *Pool) Resolve(companyCode string) (*gorm.DB, error) {
	if companyCode == "" || !companyCodeRe.MatchString(companyCode) {
		return nil, errors.Wrapf(models.ErrNoTenant, "код компании %q", companyCode)
	}

	p.mu.RLock()
	conn, ok := p.conns[companyCode]
	p.mu.RUnlock()
	if ok {
		return conn, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if conn, ok = p.conns[companyCode]; ok {
		return conn, nil
	}

	conn, err := p.open(companyCode)
	if err != nil {
		return nil, err
	}
	p.conns[companyCode] = conn
	return conn, nil
}

func (p *Pool) open(companyCode string) (*gorm.DB, error) {
	dbName := fmt.Sprintf("%s_%s", companyCode, p.nameSuffix)
	if p.migrate {
		if err := p.ensureDatabase(dbName); err != nil {
			return nil, err
		}
	}
	dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		p.host, p.port, p.user, dbName, p.pass)
	conn, err := gorm.Open(postgres.Open(dbConnString), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		if isUnknownDatabase(err) {
			return nil, errors.Wrapf(models.ErrNoTenant, "БД компании %v не существует", companyCode)
		}
		return nil, errors.Wrapf(err, "ошибка подключения к БД компании %v", companyCode)
	}
	if p.debugMode {
		conn.Logger = logger.Default.LogMode(logger.Info)
		conn = conn.Debug()
	}
	if p.migrate {
		if err = autoMigrate(conn); err != nil {
			return nil, err
		}
	}
	log.WithField("company_code", companyCode).Info("Сервис успешно подключен к БД тенанта")
	return conn, nil
}

// ensureDatabase создаёт БД тенанта через служебное подключение
func (p *Pool) ensureDatabase(dbName string) error {
	connString := fmt.Sprintf("host=%s port=%s user=%s dbname=postgres sslmode=disable password=%s",
		p.host, p.port, p.user, p.pass)
	adminDB, err := sql.Open("postgres", connString)
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к служебной БД")
	}
	defer adminDB.Close()

	_, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(dbName)))
	if err != nil && !isDuplicateDatabase(err) {
		return errors.Wrapf(err, "ошибка создания БД %v", dbName)
	}
	return nil
}

// 42P04 - duplicate_database
func isDuplicateDatabase(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P04"
	}
	return false
}

// 3D000 - invalid_catalog_name
func isUnknownDatabase(err error) bool {
	return err != nil && strings.Contains(err.Error(), "3D000")
}

func (p *Pool) Ping() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for code, conn := range p.conns {
		db, err := conn.DB()
		if err != nil {
			return errors.Wrapf(err, "тенант %v", code)
		}
		if err = db.Ping(); err != nil {
			return errors.Wrapf(err, "тенант %v", code)
		}
	}
	return nil
}
