package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/Daskott/folio/contactform"
	"github.com/Daskott/folio/i18n"
	"github.com/Daskott/folio/server/auth"
	"github.com/Daskott/folio/server/work"
	"github.com/Daskott/folio/shared"
	"github.com/Daskott/folio/utils"
	"github.com/go-playground/validator"
	"github.com/spf13/viper"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad interface{}, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad)
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

func RegisterValidators(validate *validator.Validate) error {
	// Report fields by their json name, e.g. 'message' instead of 'Message'
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !contactform.IsBlank(fl.Field().String())
	})
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return contactform.IsEmailShape(fl.Field().String())
	})
	if err != nil {
		return err
	}

	return nil
}

// contactFieldErrors maps validator failures to localized messages, in field
// order. Only the first failing rule of each field is reported.
func contactFieldErrors(errs validator.ValidationErrors, catalog *i18n.Catalog) (map[string]string, string) {
	fieldErrors := make(map[string]string)
	first := ""

	for _, fieldErr := range errs {
		if _, ok := fieldErrors[fieldErr.Field()]; ok {
			continue
		}

		msg := catalog.Text(contactMessageKey(fieldErr.Field(), fieldErr.Tag()))
		fieldErrors[fieldErr.Field()] = msg
		if first == "" {
			first = msg
		}
	}

	return fieldErrors, first
}

func contactMessageKey(field, tag string) string {
	switch tag {
	case "notblank", "required":
		return "Contact." + field + "Required"
	case "contact_email":
		return contactform.KeyEmailInvalid
	case "max":
		return "Contact." + field + "TooLong"
	}

	return contactform.KeyGenericError
}

// ---------------------------------------------------------------------------------//
// Middleware Helper functions
// --------------------------------------------------------------------------------//

func (s *folioServer) decodeAndVerifyAuthHeader(authHeaderValue string) DecodedJWT {
	authHeaderList := strings.Split(authHeaderValue, "Bearer ")
	if len(authHeaderList) < 2 {
		return DecodedJWT{ErrorMsg: "no token provided"}
	}

	tokenClaims, err := auth.DecodeJWT(authHeaderList[1], s.keyPair)
	if err != nil {
		return DecodedJWT{ErrorMsg: "invalid token provided"}
	}

	// the owner's email may have changed since the token was issued
	if !strings.EqualFold(tokenClaims.Subject, s.owner.Email) {
		return DecodedJWT{ErrorMsg: "invalid token provided"}
	}

	return DecodedJWT{Claims: tokenClaims}
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func loadServerConfig(config *viper.Viper) (*shared.ServerConfig, error) {
	serverConfig := shared.ServerConfig{}

	err := config.Unmarshal(&serverConfig)
	if err != nil {
		return nil, err
	}

	err = validate.Struct(serverConfig)
	if err != nil {
		return nil, err
	}

	return &serverConfig, nil
}

func serve(server *http.Server) {
	logg.Infof("Folio server is listening on %v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(s *folioServer, workerPool *work.WorkerPoolAdapter, server *http.Server, backupDb bool) {
	// Stop accepting requests first, so no new jobs get enqueued
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Errorf("Folio server shutdown failed:%+s", err)
	}

	workerPool.Stop()
	s.limiter.Stop()

	if backupDb {
		if err := s.backupSqliteDb(nil); err != nil {
			logg.Error(err)
		}
	}

	logg.Infof("Folio server stopped properly")
}

// configDirectory retrieves the directory to store folio data
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'folio' folder in home directory for prod
	configFolderName := "folio"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
