package router

import (
	"time"

	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/config"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/handler"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/middleware"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/repository"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/service"
	"github.com/crinfinformatica-lgtm/crinf-informatica-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New monta todas as dependências e devolve o engine Gin configurado.
// Grafo de dependências: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadeia de middleware global (a ordem importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min por IP

	// ── Repositórios ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	livroRepo := repository.NewLivroRepository(db)
	vendaRepo := repository.NewVendaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	caixaSvc := service.NewCaixaService(caixaRepo, livroRepo, dispatcher)
	vendaSvc := service.NewVendaService(vendaRepo, livroRepo, caixaRepo)
	relatorioSvc := service.NewRelatorioService(livroRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	vendasH := handler.NewVendaHandler(vendaSvc)
	relatoriosH := handler.NewRelatorioHandler(relatorioSvc)

	// ── Rotas ────────────────────────────────────────────────────────────────

	// Público
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Rotas protegidas
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Papéis: operador, gerente — declarados por endpoint
		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", middleware.RequirePapel("operador", "gerente"), caixaH.Abrir)
			caixa.POST("/:id/fechar", middleware.RequirePapel("operador", "gerente"), caixaH.Fechar)
			caixa.POST("/:id/cancelar", middleware.RequirePapel("gerente"), caixaH.Cancelar)
			caixa.POST("/movimento", middleware.RequirePapel("operador", "gerente"), caixaH.RegistrarMovimento)
			caixa.GET("/:id/resumo", middleware.RequirePapel("operador", "gerente"), caixaH.Resumo)
			caixa.GET("/:id/livro", middleware.RequirePapel("operador", "gerente"), caixaH.Extrato)
			caixa.GET("/atual", middleware.RequirePapel("operador", "gerente"), caixaH.Atual)
			caixa.GET("/historico", middleware.RequirePapel("gerente"), caixaH.Historico)
		}

		v1.POST("/vendas", middleware.RequirePapel("operador", "gerente"), vendasH.Registrar)
		v1.GET("/vendas", middleware.RequirePapel("operador", "gerente"), vendasH.Listar)
		v1.POST("/vendas/:id/cancelar", middleware.RequirePapel("gerente"), vendasH.Cancelar)

		rel := v1.Group("/relatorios", middleware.RequirePapel("gerente"))
		{
			rel.GET("/receita", relatoriosH.Receita)
			rel.GET("/categorias", relatoriosH.TotaisPorCategoria)
			rel.GET("/top", relatoriosH.TopDescricoes)
			rel.GET("/livro", relatoriosH.ListarTransacoes)
		}

		usuarios := v1.Group("/auth/usuarios", middleware.RequirePapel("gerente"))
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
		}
	}

	// Swagger UI — habilitado apenas fora de produção
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
