// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package messages

// phraseBook holds the canned messages served by Random.
var phraseBook = map[string][]string{
	CategoryGreetings: {
		"Hi there! Hope you're having a fantastic day! 🌟",
		"Greetings and salutations! 👋",
		"Hey! Wishing you a wonderful time! ✨",
		"Hello! May your day be filled with joy! 🌈",
		"What's up? Have a fantastic day ahead! 🌞",
		"Hey there! Wishing you a day as bright as your smile! 💫",
		"Hello! May today bring you happiness and success! 🎉",
		"Hi! Sending you positive vibes for a great day! 🌱",
		"Good morning! May today be the start of something amazing! ☀️",
		"Hey! Wishing you a day filled with laughter and adventure! 🎉",
		"Hello! May your day be as sweet as you are! 🍰",
		"Hi! Sending you love and positivity for a fantastic day! ❤️",
		"Good morning! May today bring you peace and happiness! 🌸",
		"Hey! Wishing you a day that's as bright as your future! 🌟",
		"Hello! May today be the start of a new chapter in your life! 📚",
		"Hi! Sending you warm wishes for a wonderful day! 🌞",
		"Good morning! May today bring you joy and fulfillment! 🌈",
		"Hey! Wishing you a day filled with excitement and wonder! 🎉",
		"Hello! May today be a day to remember! 📸",
		"Hi! Sending you sunshine and smiles for a great day! ☀️",
		"Good morning! May today bring you strength and courage! 💪",
		"Hey! Wishing you a day that's as unique as you are! 🌈",
	},
	CategoryJokes: {
		"What did the coffee report to the police? A mugging! ☕",
		"Why don't eggs tell jokes? They'd crack up! 🥚",
		"What do you call a bear with no teeth? A gummy bear! 🐻",
		"Why did the scarecrow win an award? He was outstanding in his field! 🌾",
		"Why did the bicycle fall over? Because it was two-tired! 🚴",
		"What do you call a group of cows playing instruments? A moo-sical band! 🐮",
		"Why did the banana go to the doctor? He wasn't peeling well! 🍌",
		"Why did the astronaut break up with his girlfriend? Because he needed space! 🚀",
		"What do you call a can opener that doesn't work? A can't opener! 🍲",
		"Why did the computer go to the doctor? It had a virus! 💻",
		"Why did the mushroom go to the party? Because he was a fun-gi! 🍄",
		"Why did the pencil break up with the eraser? It was a sharp move! ✏️",
		"What do you call a fish with a sunburn? A star-fish! 🐟",
		"Why did the rabbit go to the doctor? To get some hare care! 🐰",
		"Why did the computer screen go to therapy? It was feeling a little glitchy! 🖥️",
		"Why did the baker go to the bank? He needed dough! 🍞",
		"Why did the turkey join the band? He was a drumstick! 🦃",
		"What do you call a group of chickens playing instruments? A fowl band! 🐓",
		"Why did the orange stop in the middle of the road? Because it ran out of juice! 🍊",
		"Why did the chicken cross the playground? To get to the other slide! 🐓",
	},
	CategoryMotivational: {
		"Every day is a new beginning! 🌅",
		"You are capable of amazing things! ⭐",
		"Your potential is limitless! 🚀",
		"Make today amazing! 💫",
		"Believe in yourself and all that you are. Know that there is something inside you that is greater than any obstacle. 🌈",
		"The future belongs to those who believe in the beauty of their dreams. 💭",
		"You don't have to be great to start, but you have to start to be great. 🚀",
		"Success is not final, failure is not fatal: It is the courage to continue that counts. 💪",
		"Don't watch the clock; do what it does. Keep going. 🕰️",
		"You are never too old to set another goal or to dream a new dream. 🌟",
		"The only way to do great work is to love what you do. ❤️",
		"Keep your eyes on the stars, and your feet on the ground. 🌠",
		"You miss 100% of the shots you don't take. 🏒️",
		"I have not failed. I've just found 10,000 ways that won't work. 💡",
		"You are stronger than you seem, braver than you believe, and smarter than you think. 💪",
		"Do something today that your future self will thank you for. 🙏",
		"Happiness can be found even in the darkest of times if one only remembers to turn on the light. 💡",
		"You don't have to control your thoughts. You just have to stop letting them control you. 🙏",
		"The best is yet to come. 🌈",
		"You are doing the best you can, and that's something to be proud of. Keep going. 💪",
		"Life is 10% what happens to you and 90% how you react to it. 🌈",
	},
	CategoryLove: {
		"You are the sunshine that brightens up my day. ☀️",
		"I love you more with each passing day. 💕",
		"You are the reason I wake up with a smile on my face. 😊",
		"Forever and always, my love for you will endure. 💗",
		"You are the missing piece that makes me whole. 🧩",
		"In your eyes, I see my future. 👀",
		"You are the love of my life. 💖",
		"Every moment with you is a gift. 🎁",
		"You make my heart skip a beat. ❤️",
		"I am forever grateful for your love. 🙏",
		"You are my forever home. 🏠",
		"Your touch ignites a fire within me. 🔥",
		"You are my soulmate, my everything. 💕",
		"With you, I feel complete. 🌈",
		"You are the rhythm that makes my heart sing. 🎶",
		"In your arms, I find solace. 🤗",
		"You are the reason I breathe. 👅",
		"You are my guiding star. ⭐️",
		"Your love is my shelter. 🌂",
		"You are my forever companion. 👫",
		"With you, I feel invincible. 💪",
		"You are the melody that fills my heart. 🎵",
		"You are my safe haven. 🏠",
		"Your love is my anchor. ⚓️",
		"You are my forever love. 💕",
		"You make my heart flutter. 🦋",
		"You are my partner in every sense. 👫",
		"You are the missing piece to my puzzle. 🧩",
		"You are my forever friend. 👫",
		"You are the love that sets my soul on fire. 🔥",
		"You are my forever everything. 💕",
		"You are the reason I am alive. 👅",
		"You are my guiding light. ✨",
		"You are my shelter from the storm. ⛈️",
	},
}
