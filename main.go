package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"googlemaps.github.io/maps"

	"github.com/carecompass/carecompass-api/api"
	"github.com/carecompass/carecompass-api/external/anthropic"
	"github.com/carecompass/carecompass-api/geo"
	"github.com/carecompass/carecompass-api/store"
	"github.com/carecompass/carecompass-api/triage"
)

var (
	server        *api.Server
	registryStore store.FacilityStore
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("carecompass")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func newLocationResolver() geo.LocationResolver {
	resolvers := []geo.LocationResolver{
		geo.NewCityTableResolver(),
	}

	if apiKey := viper.GetString("map.apikey"); apiKey != "" {
		mapClient, err := maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Panicf("init google map client with error: %s", err)
		}
		resolvers = append(resolvers, geo.NewGeocodingResolver(mapClient))
		log.WithField("prefix", "init").Info("Initialized geocoding resolver")
	}

	return geo.NewLatestResolver(geo.NewMultipleResolver(resolvers...))
}

func newFacilityStore() store.FacilityStore {
	if conn := viper.GetString("mongo.conn"); conn != "" {
		opts := options.Client().ApplyURI(conn)
		opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
		mongoClient, err := mongo.NewClient(opts)
		if nil != err {
			log.Panicf("create mongo client with error: %s", err)
		}

		if err := mongoClient.Connect(context.Background()); nil != err {
			log.Panicf("connect mongo database with error: %s", err)
		}

		return store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	}

	registryFile := viper.GetString("facility.registry")
	if registryFile == "" {
		registryFile = "./facilities.json"
	}
	return store.NewFileStore(registryFile)
}

func main() {
	var configFile string

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if registryStore != nil {
			log.Info("Shutting down facility store")
			registryStore.Close()
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// Upstream model client
	analyzer, err := anthropic.New(anthropic.Config{
		APIKey:    viper.GetString("anthropic.apikey"),
		Endpoint:  viper.GetString("anthropic.endpoint"),
		Model:     viper.GetString("anthropic.model"),
		MaxTokens: viper.GetInt("anthropic.maxtokens"),
		Timeout:   viper.GetDuration("anthropic.timeout"),
	})
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Initialized anthropic client")

	pipeline := triage.NewPipeline(analyzer, viper.GetDuration("triage.timeout"))

	registryStore = newFacilityStore()

	// Init http server
	server, err = api.NewServer(
		pipeline,
		registryStore,
		newLocationResolver(),
		viper.GetBool("triage.fallback"))
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Initialized http server")

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
