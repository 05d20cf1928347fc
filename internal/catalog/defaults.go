// Package catalog holds the static model catalog that seeds the ai_models
// table. The table is the source of truth at runtime; this list only feeds
// the idempotent reconcile in the seeder.
package catalog

import "tg-miniapp-be/internal/entity"

func strPtr(s string) *string { return &s }

// DefaultModels returns the shipped catalog in display order. Reconcile rules:
// technical fields follow this list, price_tokens is admin-owned once a row
// exists, rows whose code disappears from this list get disabled.
func DefaultModels() []*entity.AIModel {
	return []*entity.AIModel{
		// Image: text-to-image
		{
			Code: "nano-banana", Name: "Nano Banana",
			Description:   "Google Gemini 2.5 Flash, fast image generation",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "nano-banana",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeTextToImage,
			PriceTokens:   4, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"1:1", "16:9", "9:16", "4:3", "3:4"},
			IsEnabled:    true, Icon: strPtr("🍌"),
		},
		{
			Code: "nano-banana-2", Name: "Nano Banana Pro",
			Description:   "Google Gemini 3 Pro, 2K output",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "nano-banana-2",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeTextToImage,
			PriceTokens:   6, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"1:1", "16:9", "9:16", "4:3", "3:4"},
			IsEnabled:    true, Icon: strPtr("🍌"),
		},
		{
			Code: "gpt-image-1.5", Name: "GPT Image 1.5",
			Description:   "OpenAI GPT Image 1.5",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "gpt-image-1.5",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeTextToImage,
			PriceTokens:   4, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"1:1", "16:9", "9:16", "4:3", "3:4"},
			IsEnabled:    true, Icon: strPtr("🎨"),
		},
		{
			Code: "seedream-4.5", Name: "Seedream 4.5",
			Description:   "ByteDance Seedream 4.5, 4K output",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "seedream-4.5",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeTextToImage,
			PriceTokens:   5, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"1:1", "16:9", "9:16", "4:3", "3:4"},
			IsEnabled:    true, Icon: strPtr("🌱"),
		},
		{
			Code: "flux-2-pro", Name: "Flux 2 Pro",
			Description:   "Black Forest Labs Flux 2 Pro, photorealism",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "flux-2-pro",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeTextToImage,
			PriceTokens:   6, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"1:1", "16:9", "9:16"},
			IsEnabled:    true, Icon: strPtr("⚡"),
		},
		{
			Code: "z-image", Name: "Z Image",
			Description:   "Alibaba Z-Image, ultra fast",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "z-image",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeTextToImage,
			PriceTokens:   4, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"1:1", "16:9", "9:16", "4:3", "3:4"},
			IsEnabled:    true, Icon: strPtr("⚡"),
		},

		// Image: image-to-image
		{
			Code: "nano-banana-edit", Name: "Nano Banana",
			Description:   "Google Gemini image editing",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "nano-banana-edit",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeImageToImage,
			PriceTokens:   4, PriceDisplayMode: entity.PriceFixed,
			RequiresImage: true,
			AspectRatios:  []string{"1:1", "16:9", "9:16"},
			IsEnabled:     true, Icon: strPtr("🍌"),
		},
		{
			Code: "gpt-image-1.5-edit", Name: "GPT Image 1.5",
			Description:   "OpenAI GPT Image 1.5 editing",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "gpt-image-1.5-edit",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeImageToImage,
			PriceTokens:   4, PriceDisplayMode: entity.PriceFixed,
			RequiresImage: true,
			AspectRatios:  []string{"1:1", "16:9", "9:16"},
			IsEnabled:     true, Icon: strPtr("🎨"),
		},
		{
			Code: "flux-2-pro-edit", Name: "Flux 2 Pro",
			Description:   "Flux 2 Pro multi-reference editing",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "flux-2-pro-edit",
			Type:          entity.GenerationTypeImage,
			Mode:          entity.ModeImageToImage,
			PriceTokens:   6, PriceDisplayMode: entity.PriceFixed,
			RequiresImage: true,
			AspectRatios:  []string{"1:1", "16:9", "9:16"},
			IsEnabled:     true, Icon: strPtr("⚡"),
		},

		// Video: text-to-video
		{
			Code: "veo3-fast", Name: "Veo 3.1 Fast",
			Description:   "Google Veo 3.1, fast video with audio",
			Provider:      entity.ProviderKie,
			ProviderModel: "veo3_fast",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeTextToVideo,
			PriceTokens:   64, PricePerSecond: 8, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"16:9", "9:16"},
			Durations:    []int{8},
			IsEnabled:    true, Icon: strPtr("🎬"),
		},
		{
			Code: "kling-2.6", Name: "Kling 2.6",
			Description:   "Kling 2.6, video with native audio",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "kling-2.6",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeTextToVideo,
			PriceTokens:   20, PricePerSecond: 4, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"16:9", "9:16", "1:1"},
			Durations:    []int{5, 10},
			IsEnabled:    true, Icon: strPtr("🎞️"),
		},
		{
			Code: "sora-2", Name: "Sora 2",
			Description:   "OpenAI Sora 2 video generation",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "sora-2",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeTextToVideo,
			PriceTokens:   50, PricePerSecond: 5, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"16:9", "9:16", "1:1"},
			Durations:    []int{10, 15},
			IsEnabled:    true, Icon: strPtr("🎥"),
		},
		{
			Code: "wan-2.6", Name: "Wan 2.6",
			Description:   "Alibaba Wan 2.6, multi-shot 1080p",
			Provider:      entity.ProviderPoyo,
			ProviderModel: "wan2.6-text-to-video",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeTextToVideo,
			PriceTokens:   15, PricePerSecond: 3, PriceDisplayMode: entity.PriceFixed,
			AspectRatios: []string{"16:9", "9:16"},
			Durations:    []int{5, 10, 15},
			IsEnabled:    true, Icon: strPtr("🎭"),
		},

		// Video: image-to-video
		{
			Code: "veo3-fast-i2v", Name: "Veo 3.1 Fast",
			Description:   "Google Veo 3.1, animate an image",
			Provider:      entity.ProviderKie,
			ProviderModel: "veo3_fast",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeImageToVideo,
			PriceTokens:   64, PricePerSecond: 8, PriceDisplayMode: entity.PriceFixed,
			RequiresImage: true,
			AspectRatios:  []string{"16:9", "9:16"},
			Durations:     []int{8},
			IsEnabled:     true, Icon: strPtr("🎬"),
		},
		{
			Code: "kling-2.6-i2v", Name: "Kling 2.6",
			Description:   "Kling 2.6, animate an image",
			Provider:      entity.ProviderKie,
			ProviderModel: "kling-2.6/image-to-video",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeImageToVideo,
			PriceTokens:   20, PricePerSecond: 4, PriceDisplayMode: entity.PriceFixed,
			RequiresImage: true,
			AspectRatios:  []string{"16:9", "9:16", "1:1"},
			Durations:     []int{5, 10},
			IsEnabled:     true, Icon: strPtr("🎞️"),
		},
		{
			Code: "hailuo-i2v", Name: "Hailuo 02",
			Description:   "MiniMax Hailuo 02, animate an image",
			Provider:      entity.ProviderKie,
			ProviderModel: "hailuo/02-image-to-video-pro",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeImageToVideo,
			PriceTokens:   36, PricePerSecond: 6, PriceDisplayMode: entity.PriceFixed,
			RequiresImage: true,
			AspectRatios:  []string{"16:9", "9:16"},
			Durations:     []int{6, 10},
			IsEnabled:     true, Icon: strPtr("🌊"),
		},

		// Video: motion control, billed by the second of the driving video
		{
			Code: "kling-2.6-motion-control", Name: "Kling 2.6 Motion Control",
			Description:   "Transfer motion from a video onto a character image",
			Provider:      entity.ProviderKie,
			ProviderModel: "kling-2.6/motion-control",
			Type:          entity.GenerationTypeVideo,
			Mode:          entity.ModeMotionControl,
			PriceTokens:   1, PricePerSecond: 1, PriceDisplayMode: entity.PricePerSecond,
			RequiresImage: true,
			RequiresVideo: true,
			IsEnabled:     true, Icon: strPtr("🕺"),
		},
	}
}
