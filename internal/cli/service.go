package cli

import "reqlock/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
