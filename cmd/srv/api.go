package main

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/middleware"
	"github.com/spinmall/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cliCtx *cli.Context) error {
	if err := s.load(cliCtx); err != nil {
		return err
	}

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	return s.startServer()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.GETHandler("/metrics", promhttp.Handler())

	// Public routes.
	publicRouter := s.router.Branch()
	router.POST(publicRouter, "/register", s.authDomain.Register)
	router.POST(publicRouter, "/login", s.authDomain.Login)
	router.GET(publicRouter, "/getLotteryTypes", s.lotteryDomain.GetTypes)
	router.GET(publicRouter, "/getLotteryActivities", s.lotteryDomain.GetActivities)
	router.GET(publicRouter, "/getLotteryActivity", s.lotteryDomain.GetActivity)
	router.GET(publicRouter, "/getLotteryActivityRecords", s.lotteryDomain.GetActivityRecords)
	router.GET(publicRouter, "/getBanners", s.bannerDomain.GetList)
	router.POST(publicRouter, "/clickBanner", s.bannerDomain.Click)
	router.GET(publicRouter, "/getApplications", s.applicationDomain.GetList)
	router.POST(publicRouter, "/clickApplication", s.applicationDomain.Click)
	router.GET(publicRouter, "/getProducts", s.productDomain.GetList)

	// Authenticated routes.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	router.GET(authRouter, "/getMe", s.userDomain.GetMe)
	router.POST(authRouter, "/drawLottery", s.lotteryDomain.Draw)
	router.GET(authRouter, "/getMyLotteryRecords", s.lotteryDomain.GetMyRecords)
	router.GET(authRouter, "/getMyPointLogs", s.pointDomain.GetMyLogs)
	router.POST(authRouter, "/exchangeProduct", s.productDomain.Exchange)
	router.GET(authRouter, "/getMyExchangeOrders", s.productDomain.GetMyOrders)

	// Admin routes. The domain methods verify the role again themselves, the
	// middleware just rejects earlier with a clearer error.
	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.MustAdmin(s.userRepo))
	router.POST(adminRouter, "/createLotteryType", s.lotteryDomain.CreateType)
	router.POST(adminRouter, "/createLotteryActivity", s.lotteryDomain.CreateActivity)
	router.POST(adminRouter, "/updateLotteryActivity", s.lotteryDomain.UpdateActivity)
	router.POST(adminRouter, "/deleteLotteryActivity", s.lotteryDomain.DeleteActivity)
	router.POST(adminRouter, "/adjustPoints", s.userDomain.AdjustPoints)
	router.POST(adminRouter, "/createBanner", s.bannerDomain.Create)
	router.POST(adminRouter, "/deleteBanner", s.bannerDomain.Delete)
	router.POST(adminRouter, "/createApplication", s.applicationDomain.Create)
	router.POST(adminRouter, "/deleteApplication", s.applicationDomain.Delete)
	router.POST(adminRouter, "/createProduct", s.productDomain.Create)
}
