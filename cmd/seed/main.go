// Command main runs the database seeder for SkillSwap.
package main

import (
	"flag"
	"log"

	"skillswap/internal/bootstrap"
	"skillswap/internal/config"
	"skillswap/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	maxPosts := flag.Int("max-posts", 5, "Maximum number of posts per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	users, err := seed.NewSeeder(rt.DB).Run(seed.Options{
		NumUsers:        *numUsers,
		MaxPostsPerUser: *maxPosts,
		ShouldClean:     *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %d users created, all with password %q", len(users), seed.DefaultPassword)
}
